package dto

import (
	"time"

	"github.com/softdesk/softdesk-api/internal/models"
)

// IssueDTO represents an issue in API responses
type IssueDTO struct {
	ID          uint64               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.IssueStatus   `json:"status"`
	Priority    models.IssuePriority `json:"priority"`
	Tag         models.IssueTag      `json:"tag"`
	AuthorID    uint64               `json:"author_id"`
	ProjectID   uint64               `json:"project_id"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Author      *UserSummaryDTO      `json:"author,omitempty"`
}

// IssueListResponse represents a paginated list of issues
type IssueListResponse struct {
	Issues     []IssueDTO `json:"issues"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
}

// ToIssueDTO converts an Issue model to IssueDTO
func ToIssueDTO(issue models.Issue) IssueDTO {
	dto := IssueDTO{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Tag:         issue.Tag,
		AuthorID:    issue.AuthorID,
		ProjectID:   issue.ProjectID,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}

	// Include author if preloaded
	if issue.Author.ID != 0 {
		author := ToUserSummaryDTO(issue.Author)
		dto.Author = &author
	}

	return dto
}

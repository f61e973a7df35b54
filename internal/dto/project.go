package dto

import (
	"time"

	"github.com/softdesk/softdesk-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        models.ProjectType `json:"type"`
	AuthorID    uint64             `json:"author_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Author      *UserSummaryDTO    `json:"author,omitempty"`
}

// ContributorDTO represents a contributor in API responses
type ContributorDTO struct {
	User     UserSummaryDTO `json:"user"`
	JoinedAt time.Time      `json:"joined_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
}

// ProjectDetailDTO composes a project with its author name, contributor
// list, nested issues in creation order, and comments flattened across all
// issues of the project.
type ProjectDetailDTO struct {
	ProjectDTO
	Contributors []ContributorDTO `json:"contributors"`
	Issues       []IssueDTO       `json:"issues"`
	Comments     []CommentDTO     `json:"comments"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Type:        project.Type,
		AuthorID:    project.AuthorID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include author if preloaded
	if project.Author.ID != 0 {
		author := ToUserSummaryDTO(project.Author)
		dto.Author = &author
	}

	return dto
}

// ToContributorDTO converts a Contributor model to ContributorDTO
func ToContributorDTO(contributor models.Contributor) ContributorDTO {
	return ContributorDTO{
		User:     ToUserSummaryDTO(contributor.User),
		JoinedAt: contributor.JoinedAt,
	}
}

// ToProjectDetailDTO builds the enriched project view
func ToProjectDetailDTO(project models.Project, contributors []models.Contributor, issues []models.Issue, comments []models.Comment) ProjectDetailDTO {
	contributorDTOs := make([]ContributorDTO, len(contributors))
	for i, contributor := range contributors {
		contributorDTOs[i] = ToContributorDTO(contributor)
	}

	issueDTOs := make([]IssueDTO, len(issues))
	for i, issue := range issues {
		issueDTOs[i] = ToIssueDTO(issue)
	}

	commentDTOs := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = ToCommentDTO(comment)
	}

	return ProjectDetailDTO{
		ProjectDTO:   ToProjectDTO(project),
		Contributors: contributorDTOs,
		Issues:       issueDTOs,
		Comments:     commentDTOs,
	}
}

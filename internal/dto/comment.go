package dto

import (
	"time"

	"github.com/softdesk/softdesk-api/internal/models"
)

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID          uint64          `json:"id"`
	Ref         string          `json:"ref"`
	Description string          `json:"description"`
	AuthorID    uint64          `json:"author_id"`
	IssueID     uint64          `json:"issue_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Author      *UserSummaryDTO `json:"author,omitempty"`
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:          comment.ID,
		Ref:         comment.Ref,
		Description: comment.Description,
		AuthorID:    comment.AuthorID,
		IssueID:     comment.IssueID,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}

	// Include author if preloaded
	if comment.Author.ID != 0 {
		author := ToUserSummaryDTO(comment.Author)
		dto.Author = &author
	}

	return dto
}

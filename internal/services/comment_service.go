package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softdesk/softdesk-api/internal/authz"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"github.com/softdesk/softdesk-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound            = errors.New("comment not found")
	ErrCommentDescriptionRequired = errors.New("comment description cannot be empty")
)

// CommentService provides business logic for comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	issueRepo   repository.IssueRepository
	engine      *authz.Engine
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, issueRepo repository.IssueRepository, engine *authz.Engine) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		issueRepo:   issueRepo,
		engine:      engine,
	}
}

// CreateCommentInput represents parameters to create a comment. The author
// is always the caller.
type CreateCommentInput struct {
	Description string
	IssueID     uint64
	AuthorID    uint64
}

// CreateComment creates a comment on an issue. The caller must be a
// contributor of the project owning the issue; a fresh reference token is
// assigned.
func (s *CommentService) CreateComment(input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrCommentDescriptionRequired
	}

	issue, err := s.issueRepo.FindByID(input.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	if err := s.engine.Authorize(input.AuthorID, authz.IntentWrite, authz.ProjectScopeTarget{ProjectID: issue.ProjectID}); err != nil {
		return nil, scopeAuthzError(err)
	}

	comment := &models.Comment{
		Ref:         utils.GenerateCommentRef(),
		Description: input.Description,
		IssueID:     input.IssueID,
		AuthorID:    input.AuthorID,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID, "Author")
}

// GetComment returns a comment by ID.
func (s *CommentService) GetComment(commentID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID, "Author", "Issue")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

// GetCommentByRef returns a comment by its external reference token.
func (s *CommentService) GetCommentByRef(ref string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByRef(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

// ListComments returns an issue's comments in creation order.
func (s *CommentService) ListComments(issueID uint64) ([]models.Comment, error) {
	if _, err := s.issueRepo.FindByID(issueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	comments, err := s.commentRepo.ListByIssue(issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// UpdateComment updates a comment's description. Contributors of the
// owning project only.
func (s *CommentService) UpdateComment(actorID, commentID uint64, description string) (*models.Comment, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrCommentDescriptionRequired
	}

	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.CommentTarget{Comment: comment}); err != nil {
		return nil, scopeAuthzError(err)
	}

	comment.Description = description

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return s.commentRepo.FindByID(comment.ID, "Author")
}

// DeleteComment deletes a comment. Contributors of the owning project only.
func (s *CommentService) DeleteComment(actorID, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.CommentTarget{Comment: comment}); err != nil {
		return scopeAuthzError(err)
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

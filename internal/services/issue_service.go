package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/softdesk/softdesk-api/internal/authz"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrIssueNotFound         = errors.New("issue not found")
	ErrIssueTitleRequired    = errors.New("issue title cannot be empty")
	ErrNotProjectContributor = errors.New("user is not a contributor of the project")
)

// IssueService provides business logic for issues.
type IssueService struct {
	issueRepo   repository.IssueRepository
	projectRepo repository.ProjectRepository
	engine      *authz.Engine
}

// NewIssueService creates a new IssueService.
func NewIssueService(issueRepo repository.IssueRepository, projectRepo repository.ProjectRepository, engine *authz.Engine) *IssueService {
	return &IssueService{
		issueRepo:   issueRepo,
		projectRepo: projectRepo,
		engine:      engine,
	}
}

// CreateIssueInput represents parameters to create an issue. The author is
// always the caller.
type CreateIssueInput struct {
	Title       string
	Description string
	Status      models.IssueStatus
	Priority    models.IssuePriority
	Tag         models.IssueTag
	ProjectID   uint64
	AuthorID    uint64
}

// CreateIssue creates an issue on a project. The caller must be a
// contributor of the target project; authorship is forced to the caller.
func (s *IssueService) CreateIssue(input CreateIssueInput) (*models.Issue, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrIssueTitleRequired
	}

	if err := s.engine.Authorize(input.AuthorID, authz.IntentWrite, authz.ProjectScopeTarget{ProjectID: input.ProjectID}); err != nil {
		return nil, scopeAuthzError(err)
	}

	if input.Status == "" {
		input.Status = models.IssueStatusTodo
	}

	issue := &models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Tag:         input.Tag,
		ProjectID:   input.ProjectID,
		AuthorID:    input.AuthorID,
	}

	if err := s.issueRepo.Create(issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	return s.issueRepo.FindByID(issue.ID, "Author", "Project")
}

// GetIssue returns an issue with related data.
func (s *IssueService) GetIssue(issueID uint64) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(issueID, "Author", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	return issue, nil
}

// ListIssues returns a project's issues in creation order.
func (s *IssueService) ListIssues(projectID uint64, offset, limit int) ([]models.Issue, int64, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProjectNotFound
		}
		return nil, 0, fmt.Errorf("failed to find project: %w", err)
	}

	issues, total, err := s.issueRepo.ListByProject(projectID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, total, nil
}

// UpdateIssueInput represents fields that can change on an issue.
type UpdateIssueInput struct {
	Title       *string
	Description *string
	Status      *models.IssueStatus
	Priority    *models.IssuePriority
	Tag         *models.IssueTag
}

// UpdateIssue updates an issue. Contributors of its project only.
func (s *IssueService) UpdateIssue(actorID, issueID uint64, input UpdateIssueInput) (*models.Issue, error) {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, fmt.Errorf("failed to find issue: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.IssueTarget{Issue: issue}); err != nil {
		return nil, scopeAuthzError(err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrIssueTitleRequired
		}
		issue.Title = *input.Title
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Status != nil {
		issue.Status = *input.Status
	}
	if input.Priority != nil {
		issue.Priority = *input.Priority
	}
	if input.Tag != nil {
		issue.Tag = *input.Tag
	}

	if err := s.issueRepo.Update(issue); err != nil {
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	return s.issueRepo.FindByID(issue.ID, "Author", "Project")
}

// DeleteIssue deletes an issue and its comments. Contributors of its
// project only.
func (s *IssueService) DeleteIssue(actorID, issueID uint64) error {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIssueNotFound
		}
		return fmt.Errorf("failed to find issue: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.IssueTarget{Issue: issue}); err != nil {
		return scopeAuthzError(err)
	}

	if err := s.issueRepo.Delete(issueID); err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	return nil
}

func scopeAuthzError(err error) error {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		return ErrNotProjectContributor
	case errors.Is(err, authz.ErrScopeNotFound):
		return ErrProjectNotFound
	default:
		return err
	}
}

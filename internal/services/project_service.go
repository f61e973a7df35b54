package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/softdesk/softdesk-api/internal/authz"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectTitleRequired = errors.New("project title cannot be empty")
	ErrNotProjectAuthor     = errors.New("only the project author can perform this action")
	ErrContributorExists    = errors.New("user is already a contributor of this project")
	ErrContributorNotFound  = errors.New("contributor not found")
)

// ProjectService provides business logic for projects and their contributors.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	issueRepo   repository.IssueRepository
	commentRepo repository.CommentRepository
	engine      *authz.Engine
}

// NewProjectService creates a new ProjectService.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	issueRepo repository.IssueRepository,
	commentRepo repository.CommentRepository,
	engine *authz.Engine,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		issueRepo:   issueRepo,
		commentRepo: commentRepo,
		engine:      engine,
	}
}

// CreateProjectInput represents parameters to create a new project. The
// author is always the caller; any author supplied by the client is ignored
// upstream.
type CreateProjectInput struct {
	Title       string
	Description string
	Type        models.ProjectType
	AuthorID    uint64
}

// CreateProject creates a project and enrolls the author as its first
// contributor in the same transaction.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		AuthorID:    input.AuthorID,
	}

	author := &models.Contributor{
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.Create(project, author); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns paginated projects with their authors resolved.
func (s *ProjectService) ListProjects(offset, limit int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.List(offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// ProjectDetail composes a project with its author, contributors, issues
// in creation order, and comments flattened across all issues.
type ProjectDetail struct {
	Project      models.Project
	Contributors []models.Contributor
	Issues       []models.Issue
	Comments     []models.Comment
}

// GetProjectDetail returns the enriched read-side view of a project.
func (s *ProjectService) GetProjectDetail(projectID uint64) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(projectID, "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	contributors, err := s.projectRepo.ListContributors(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	issues, _, err := s.issueRepo.ListByProject(projectID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	comments, err := s.commentRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return &ProjectDetail{
		Project:      *project,
		Contributors: contributors,
		Issues:       issues,
		Comments:     comments,
	}, nil
}

// UpdateProjectInput represents fields that can change on a project.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Type        *models.ProjectType
}

// UpdateProject updates a project. Author only.
func (s *ProjectService) UpdateProject(actorID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.ProjectTarget{Project: project}); err != nil {
		return nil, projectAuthzError(err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrProjectTitleRequired
		}
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Type != nil {
		project.Type = *input.Type
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project with its contributors, issues and
// comments. Author only; the cascade is transactional.
func (s *ProjectService) DeleteProject(actorID, projectID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.ProjectTarget{Project: project}); err != nil {
		return projectAuthzError(err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddContributor enrolls a user on a project. Author only; duplicate pairs
// surface as a conflict.
func (s *ProjectService) AddContributor(actorID, projectID, userID uint64) (*models.Contributor, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.ContributorTarget{Project: project}); err != nil {
		return nil, projectAuthzError(err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindContributor(projectID, userID); err == nil {
		return nil, ErrContributorExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check contributor: %w", err)
	}

	contributor := &models.Contributor{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddContributor(contributor); err != nil {
		// The composite key settles concurrent duplicate enrollments.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrContributorExists
		}
		return nil, fmt.Errorf("failed to add contributor: %w", err)
	}

	return contributor, nil
}

// RemoveContributor removes a user's enrollment on a project. Author only.
// Takes the (project, user) pair rather than a row id.
func (s *ProjectService) RemoveContributor(actorID, projectID, userID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.engine.Authorize(actorID, authz.IntentWrite, authz.ContributorTarget{Project: project}); err != nil {
		return projectAuthzError(err)
	}

	if _, err := s.projectRepo.FindContributor(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContributorNotFound
		}
		return fmt.Errorf("failed to find contributor: %w", err)
	}

	if err := s.projectRepo.RemoveContributor(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove contributor: %w", err)
	}

	return nil
}

// ListContributors lists the contributors of a project.
func (s *ProjectService) ListContributors(projectID uint64) ([]models.Contributor, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	contributors, err := s.projectRepo.ListContributors(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}

	return contributors, nil
}

func projectAuthzError(err error) error {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		return ErrNotProjectAuthor
	case errors.Is(err, authz.ErrScopeNotFound):
		return ErrProjectNotFound
	default:
		return err
	}
}

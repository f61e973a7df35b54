// Package authz implements the single authorization decision point for the
// API. Every mutating service call asks the Engine for a verdict before
// touching storage; the per-resource rules live here and nowhere else.
package authz

import (
	"errors"
	"fmt"

	"github.com/softdesk/softdesk-api/internal/models"
	"gorm.io/gorm"
)

// Intent classifies an operation as a read or a write. Write covers
// create, update and delete.
type Intent int

const (
	IntentRead Intent = iota
	IntentWrite
)

var (
	// ErrUnauthenticated is returned for any intent when no actor is present.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the actor lacks the required relationship.
	ErrForbidden = errors.New("permission denied")
	// ErrScopeNotFound is returned when the target's owning project cannot be resolved.
	ErrScopeNotFound = errors.New("resource scope not found")
)

// Target is the closed set of resources a decision can be made about.
// Creation inside a project uses ProjectScopeTarget since the resource
// does not exist yet.
type Target interface {
	isTarget()
}

// ProjectTarget covers writes on an existing project.
type ProjectTarget struct {
	Project *models.Project
}

// IssueTarget covers writes on an existing issue.
type IssueTarget struct {
	Issue *models.Issue
}

// CommentTarget covers writes on an existing comment.
type CommentTarget struct {
	Comment *models.Comment
}

// ContributorTarget covers adding or removing contributors on a project.
type ContributorTarget struct {
	Project *models.Project
}

// ProjectScopeTarget covers creating an issue or comment inside a project.
type ProjectScopeTarget struct {
	ProjectID uint64
}

func (ProjectTarget) isTarget()      {}
func (IssueTarget) isTarget()        {}
func (CommentTarget) isTarget()      {}
func (ContributorTarget) isTarget()  {}
func (ProjectScopeTarget) isTarget() {}

// ProjectFinder resolves a project by ID.
type ProjectFinder interface {
	FindByID(id uint64, preload ...string) (*models.Project, error)
}

// IssueFinder resolves an issue by ID, needed for the Comment -> Issue ->
// Project scope hop.
type IssueFinder interface {
	FindByID(id uint64, preload ...string) (*models.Issue, error)
}

// ContributorFinder checks for a contributor row.
type ContributorFinder interface {
	FindContributor(projectID, userID uint64) (*models.Contributor, error)
}

// Engine decides whether an actor may perform an intent on a target. It is
// a pure decision function over current state: lookups are point-in-time
// reads and no state is mutated.
type Engine struct {
	projects     ProjectFinder
	issues       IssueFinder
	contributors ContributorFinder
}

// NewEngine creates an Engine over the given read interfaces.
func NewEngine(projects ProjectFinder, issues IssueFinder, contributors ContributorFinder) *Engine {
	return &Engine{
		projects:     projects,
		issues:       issues,
		contributors: contributors,
	}
}

// Authorize returns nil when the actor may perform the intent on the
// target, ErrUnauthenticated or ErrForbidden otherwise. An actorID of zero
// means the request carries no authenticated identity.
//
// Rules, checked in order:
//  1. unauthenticated actors are denied everything
//  2. reads are open to any authenticated actor
//  3. project writes require the project author
//  4. issue/comment writes (and creation inside a project) require a
//     contributor of the resolved project scope; the author counts as a
//     contributor even without an explicit row
//  5. contributor management requires the project author
func (e *Engine) Authorize(actorID uint64, intent Intent, target Target) error {
	if actorID == 0 {
		return ErrUnauthenticated
	}

	if intent == IntentRead {
		return nil
	}

	switch t := target.(type) {
	case ProjectTarget:
		return requireAuthor(t.Project, actorID)
	case ContributorTarget:
		return requireAuthor(t.Project, actorID)
	case IssueTarget:
		return e.requireContributor(t.Issue.ProjectID, actorID)
	case CommentTarget:
		projectID, err := e.commentScope(t.Comment)
		if err != nil {
			return err
		}
		return e.requireContributor(projectID, actorID)
	case ProjectScopeTarget:
		return e.requireContributor(t.ProjectID, actorID)
	default:
		return fmt.Errorf("authorize: unknown target %T", target)
	}
}

func requireAuthor(project *models.Project, actorID uint64) error {
	if project.AuthorID != actorID {
		return ErrForbidden
	}
	return nil
}

// requireContributor resolves the project and allows the author or any
// holder of a contributor row.
func (e *Engine) requireContributor(projectID, actorID uint64) error {
	project, err := e.projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScopeNotFound
		}
		return fmt.Errorf("failed to resolve project scope: %w", err)
	}

	if project.AuthorID == actorID {
		return nil
	}

	if _, err := e.contributors.FindContributor(projectID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to check contributor: %w", err)
	}

	return nil
}

// commentScope resolves the project owning a comment via its issue.
func (e *Engine) commentScope(comment *models.Comment) (uint64, error) {
	if comment.Issue.ID != 0 {
		return comment.Issue.ProjectID, nil
	}

	issue, err := e.issues.FindByID(comment.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrScopeNotFound
		}
		return 0, fmt.Errorf("failed to resolve issue scope: %w", err)
	}

	return issue.ProjectID, nil
}

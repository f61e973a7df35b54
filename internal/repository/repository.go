package repository

import (
	"github.com/softdesk/softdesk-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(offset, limit int) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Erase removes the user's authored projects (with their contributors,
	// issues and comments), the user's own contributor rows, and finally the
	// user, all within a single transaction.
	Erase(id uint64) error
}

// ProjectRepository defines the interface for project and contributor data access
type ProjectRepository interface {
	// Create creates a project and the author's contributor row atomically
	Create(project *models.Project, author *models.Contributor) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects with pagination, newest first
	List(offset, limit int) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and all related data in a transaction
	Delete(id uint64) error

	// AddContributor adds a contributor to a project
	AddContributor(contributor *models.Contributor) error

	// RemoveContributor removes a contributor from a project
	RemoveContributor(projectID, userID uint64) error

	// FindContributor finds a specific contributor row
	FindContributor(projectID, userID uint64) (*models.Contributor, error)

	// ListContributors lists all contributors of a project
	ListContributors(projectID uint64) ([]models.Contributor, error)
}

// IssueRepository defines the interface for issue data access
type IssueRepository interface {
	// Create creates a new issue
	Create(issue *models.Issue) error

	// FindByID finds an issue by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Issue, error)

	// ListByProject lists issues of a project in creation order
	ListByProject(projectID uint64, offset, limit int) ([]models.Issue, int64, error)

	// Update updates an issue
	Update(issue *models.Issue) error

	// Delete removes an issue and its comments in a transaction
	Delete(id uint64) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// FindByRef finds a comment by its external reference token
	FindByRef(ref string) (*models.Comment, error)

	// ListByIssue lists comments of an issue in creation order
	ListByIssue(issueID uint64) ([]models.Comment, error)

	// ListByProject lists comments across all issues of a project in creation order
	ListByProject(projectID uint64) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id uint64) error
}

package authz

import (
	"testing"
	"time"

	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type engineTestEnv struct {
	db     *gorm.DB
	engine *Engine
}

func setupEngineTestEnv(t *testing.T) engineTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	)
	require.NoError(t, err)

	projectRepo := repository.NewProjectRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	engine := NewEngine(projectRepo, issueRepo, projectRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return engineTestEnv{db: db, engine: engine}
}

func (env engineTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Age:          30,
		PasswordHash: "hashed",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env engineTestEnv) createProject(t *testing.T, title string, authorID uint64) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:    title,
		Type:     models.ProjectTypeBackend,
		AuthorID: authorID,
	}
	require.NoError(t, env.db.Create(project).Error)
	return project
}

func (env engineTestEnv) enroll(t *testing.T, projectID, userID uint64) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Contributor{
		ProjectID: projectID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}).Error)
}

func TestAuthorize_UnauthenticatedDeniedEverything(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	project := env.createProject(t, "Project", author.ID)

	require.ErrorIs(t, env.engine.Authorize(0, IntentRead, ProjectTarget{Project: project}), ErrUnauthenticated)
	require.ErrorIs(t, env.engine.Authorize(0, IntentWrite, ProjectTarget{Project: project}), ErrUnauthenticated)
	require.ErrorIs(t, env.engine.Authorize(0, IntentWrite, ProjectScopeTarget{ProjectID: project.ID}), ErrUnauthenticated)
}

func TestAuthorize_ReadOpenToAnyAuthenticatedUser(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	stranger := env.createUser(t, "stranger")
	project := env.createProject(t, "Project", author.ID)
	issue := &models.Issue{Title: "Bug", ProjectID: project.ID, AuthorID: author.ID}
	require.NoError(t, env.db.Create(issue).Error)
	comment := &models.Comment{Ref: "ref-1", Description: "note", IssueID: issue.ID, AuthorID: author.ID}
	require.NoError(t, env.db.Create(comment).Error)

	require.NoError(t, env.engine.Authorize(stranger.ID, IntentRead, ProjectTarget{Project: project}))
	require.NoError(t, env.engine.Authorize(stranger.ID, IntentRead, IssueTarget{Issue: issue}))
	require.NoError(t, env.engine.Authorize(stranger.ID, IntentRead, CommentTarget{Comment: comment}))
}

func TestAuthorize_ProjectWriteRequiresAuthor(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	require.NoError(t, env.engine.Authorize(author.ID, IntentWrite, ProjectTarget{Project: project}))

	// Membership does not grant project writes
	require.ErrorIs(t, env.engine.Authorize(contributor.ID, IntentWrite, ProjectTarget{Project: project}), ErrForbidden)
}

func TestAuthorize_ContributorManagementRequiresAuthor(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	require.NoError(t, env.engine.Authorize(author.ID, IntentWrite, ContributorTarget{Project: project}))
	require.ErrorIs(t, env.engine.Authorize(contributor.ID, IntentWrite, ContributorTarget{Project: project}), ErrForbidden)
}

func TestAuthorize_IssueWriteRequiresMembership(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	stranger := env.createUser(t, "stranger")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	issue := &models.Issue{Title: "Bug", ProjectID: project.ID, AuthorID: contributor.ID}
	require.NoError(t, env.db.Create(issue).Error)

	require.NoError(t, env.engine.Authorize(contributor.ID, IntentWrite, IssueTarget{Issue: issue}))
	require.ErrorIs(t, env.engine.Authorize(stranger.ID, IntentWrite, IssueTarget{Issue: issue}), ErrForbidden)

	// The author counts as a contributor even without an explicit row
	require.NoError(t, env.engine.Authorize(author.ID, IntentWrite, IssueTarget{Issue: issue}))
}

func TestAuthorize_CommentScopeResolvedTransitively(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	stranger := env.createUser(t, "stranger")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	issue := &models.Issue{Title: "Bug", ProjectID: project.ID, AuthorID: contributor.ID}
	require.NoError(t, env.db.Create(issue).Error)
	comment := &models.Comment{Ref: "ref-2", Description: "note", IssueID: issue.ID, AuthorID: contributor.ID}
	require.NoError(t, env.db.Create(comment).Error)

	// Comment carries no preloaded issue, so the engine resolves the scope itself
	require.NoError(t, env.engine.Authorize(contributor.ID, IntentWrite, CommentTarget{Comment: comment}))
	require.ErrorIs(t, env.engine.Authorize(stranger.ID, IntentWrite, CommentTarget{Comment: comment}), ErrForbidden)
}

func TestAuthorize_CreationScope(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	stranger := env.createUser(t, "stranger")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	require.NoError(t, env.engine.Authorize(author.ID, IntentWrite, ProjectScopeTarget{ProjectID: project.ID}))
	require.NoError(t, env.engine.Authorize(contributor.ID, IntentWrite, ProjectScopeTarget{ProjectID: project.ID}))
	require.ErrorIs(t, env.engine.Authorize(stranger.ID, IntentWrite, ProjectScopeTarget{ProjectID: project.ID}), ErrForbidden)
}

func TestAuthorize_MissingScopeSurfacesNotFound(t *testing.T) {
	env := setupEngineTestEnv(t)

	user := env.createUser(t, "user")

	require.ErrorIs(t, env.engine.Authorize(user.ID, IntentWrite, ProjectScopeTarget{ProjectID: 9999}), ErrScopeNotFound)
}

func TestAuthorize_RevokedMembershipLosesWriteAccess(t *testing.T) {
	env := setupEngineTestEnv(t)

	author := env.createUser(t, "author")
	contributor := env.createUser(t, "contributor")
	project := env.createProject(t, "Project", author.ID)
	env.enroll(t, project.ID, contributor.ID)

	issue := &models.Issue{Title: "Bug", ProjectID: project.ID, AuthorID: contributor.ID}
	require.NoError(t, env.db.Create(issue).Error)

	require.NoError(t, env.engine.Authorize(contributor.ID, IntentWrite, IssueTarget{Issue: issue}))

	require.NoError(t, env.db.Where("project_id = ? AND user_id = ?", project.ID, contributor.ID).
		Delete(&models.Contributor{}).Error)

	// Having authored the issue does not survive revocation
	require.ErrorIs(t, env.engine.Authorize(contributor.ID, IntentWrite, IssueTarget{Issue: issue}), ErrForbidden)
}

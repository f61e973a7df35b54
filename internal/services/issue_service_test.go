package services

import (
	"testing"

	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/stretchr/testify/require"
)

// Three users: alice owns the project, bob is enrolled, carol is not.
// Walks the membership boundary across issues and comments.
func TestIssueAndCommentMembershipBoundary(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	project := env.createProject(t, "Tracker", alice.ID)

	_, err := env.projects.AddContributor(alice.ID, project.ID, bob.ID)
	require.NoError(t, err)

	// Bob can open an issue; authorship lands on him
	issue, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Login broken",
		Tag:       models.IssueTagBug,
		Priority:  models.IssuePriorityHigh,
		ProjectID: project.ID,
		AuthorID:  bob.ID,
	})
	require.NoError(t, err)
	require.Equal(t, bob.ID, issue.AuthorID)
	require.Equal(t, models.IssueStatusTodo, issue.Status)

	// Carol is not enrolled: no issue, no comment
	_, err = env.issues.CreateIssue(CreateIssueInput{
		Title:     "Drive-by report",
		ProjectID: project.ID,
		AuthorID:  carol.ID,
	})
	require.ErrorIs(t, err, ErrNotProjectContributor)

	_, err = env.comments.CreateComment(CreateCommentInput{
		Description: "Me too",
		IssueID:     issue.ID,
		AuthorID:    carol.ID,
	})
	require.ErrorIs(t, err, ErrNotProjectContributor)

	// Bob and alice both can comment
	comment, err := env.comments.CreateComment(CreateCommentInput{
		Description: "Investigating",
		IssueID:     issue.ID,
		AuthorID:    bob.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, comment.Ref)

	_, err = env.comments.CreateComment(CreateCommentInput{
		Description: "Ping me when fixed",
		IssueID:     issue.ID,
		AuthorID:    alice.ID,
	})
	require.NoError(t, err)
}

func TestCreateIssue_UnknownProjectNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)

	user := env.createUser(t, "user")

	_, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Orphan",
		ProjectID: 9999,
		AuthorID:  user.ID,
	})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateIssue_NonContributorForbidden(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice := env.createUser(t, "alice")
	carol := env.createUser(t, "carol")
	project := env.createProject(t, "Tracker", alice.ID)

	issue, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Login broken",
		ProjectID: project.ID,
		AuthorID:  alice.ID,
	})
	require.NoError(t, err)

	status := models.IssueStatusInProgress
	_, err = env.issues.UpdateIssue(carol.ID, issue.ID, UpdateIssueInput{Status: &status})
	require.ErrorIs(t, err, ErrNotProjectContributor)

	updated, err := env.issues.UpdateIssue(alice.ID, issue.ID, UpdateIssueInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.IssueStatusInProgress, updated.Status)
}

func TestDeleteIssue_CascadesComments(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice := env.createUser(t, "alice")
	project := env.createProject(t, "Tracker", alice.ID)

	issue, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Flaky test",
		ProjectID: project.ID,
		AuthorID:  alice.ID,
	})
	require.NoError(t, err)

	comment, err := env.comments.CreateComment(CreateCommentInput{
		Description: "Seen on CI",
		IssueID:     issue.ID,
		AuthorID:    alice.ID,
	})
	require.NoError(t, err)

	require.NoError(t, env.issues.DeleteIssue(alice.ID, issue.ID))

	_, err = env.issues.GetIssue(issue.ID)
	require.ErrorIs(t, err, ErrIssueNotFound)
	_, err = env.comments.GetComment(comment.ID)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetCommentByRef_RoundTrip(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice := env.createUser(t, "alice")
	project := env.createProject(t, "Tracker", alice.ID)

	issue, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Typo",
		ProjectID: project.ID,
		AuthorID:  alice.ID,
	})
	require.NoError(t, err)

	created, err := env.comments.CreateComment(CreateCommentInput{
		Description: "On the landing page",
		IssueID:     issue.ID,
		AuthorID:    alice.ID,
	})
	require.NoError(t, err)

	found, err := env.comments.GetCommentByRef(created.Ref)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = env.comments.GetCommentByRef("no-such-ref")
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestUpdateComment_EmptyDescriptionRejected(t *testing.T) {
	env := setupServiceTestEnv(t)

	alice := env.createUser(t, "alice")
	project := env.createProject(t, "Tracker", alice.ID)

	issue, err := env.issues.CreateIssue(CreateIssueInput{
		Title:     "Typo",
		ProjectID: project.ID,
		AuthorID:  alice.ID,
	})
	require.NoError(t, err)

	comment, err := env.comments.CreateComment(CreateCommentInput{
		Description: "First pass",
		IssueID:     issue.ID,
		AuthorID:    alice.ID,
	})
	require.NoError(t, err)

	_, err = env.comments.UpdateComment(alice.ID, comment.ID, "  ")
	require.ErrorIs(t, err, ErrCommentDescriptionRequired)

	updated, err := env.comments.UpdateComment(alice.ID, comment.ID, "Second pass")
	require.NoError(t, err)
	require.Equal(t, "Second pass", updated.Description)
}

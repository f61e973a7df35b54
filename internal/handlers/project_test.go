package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/softdesk-api/internal/authz"
	"github.com/softdesk/softdesk-api/internal/constants"
	"github.com/softdesk/softdesk-api/internal/database"
	"github.com/softdesk/softdesk-api/internal/dto"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/repository"
	"github.com/softdesk/softdesk-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db             *gorm.DB
	handler        *ProjectHandler
	projectService *services.ProjectService
	issueService   *services.IssueService
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	issueRepo := repository.NewIssueRepository(suite.db)
	commentRepo := repository.NewCommentRepository(suite.db)
	engine := authz.NewEngine(projectRepo, issueRepo, projectRepo)

	suite.projectService = services.NewProjectService(projectRepo, userRepo, issueRepo, commentRepo, engine)
	suite.issueService = services.NewIssueService(issueRepo, projectRepo, engine)
	suite.handler = NewProjectHandler(suite.projectService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Age:          25,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(title string, authorID uint64) *models.Project {
	project, err := suite.projectService.CreateProject(services.CreateProjectInput{
		Title:    title,
		Type:     models.ProjectTypeBackend,
		AuthorID: authorID,
	})
	suite.Require().NoError(err)
	return project
}

// Helper function to create authenticated context
func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *ProjectHandlerTestSuite) setIDParam(c *gin.Context, name string, id uint64) {
	c.Params = append(c.Params, gin.Param{Key: name, Value: fmt.Sprintf("%d", id)})
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("author")

	requestBody := map[string]interface{}{
		"title":       "SoftDesk",
		"description": "Support tracker",
		"type":        "back-end",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "SoftDesk", response.Title)
	assert.Equal(suite.T(), user.ID, response.AuthorID)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/projects", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_NonAuthorForbidden() {
	author := suite.createTestUser("author")
	other := suite.createTestUser("other")
	project := suite.createTestProject("SoftDesk", author.ID)

	requestBody := map[string]interface{}{"title": "Hijacked"}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PUT", "/api/projects/1", body, other.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_DetailView() {
	author := suite.createTestUser("author")
	project := suite.createTestProject("SoftDesk", author.ID)

	_, err := suite.issueService.CreateIssue(services.CreateIssueInput{
		Title:     "First issue",
		ProjectID: project.ID,
		AuthorID:  author.ID,
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("GET", "/api/projects/1", nil, author.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectDetailDTO
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "SoftDesk", response.Title)
	assert.NotNil(suite.T(), response.Author)
	assert.Len(suite.T(), response.Contributors, 1)
	assert.Len(suite.T(), response.Issues, 1)
	assert.Empty(suite.T(), response.Comments)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	user := suite.createTestUser("user")

	c, w := suite.createAuthContext("GET", "/api/projects/9999", nil, user.ID)
	suite.setIDParam(c, "id", 9999)

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestAddContributor_Success() {
	author := suite.createTestUser("author")
	member := suite.createTestUser("member")
	project := suite.createTestProject("SoftDesk", author.ID)

	requestBody := map[string]interface{}{"user_id": member.ID}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/contributors", body, author.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.AddContributor(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ContributorDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "member", response.User.Username)
}

func (suite *ProjectHandlerTestSuite) TestAddContributor_DuplicateConflict() {
	author := suite.createTestUser("author")
	member := suite.createTestUser("member")
	project := suite.createTestProject("SoftDesk", author.ID)

	_, err := suite.projectService.AddContributor(author.ID, project.ID, member.ID)
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{"user_id": member.ID}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/contributors", body, author.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.AddContributor(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestAddContributor_NonAuthorForbidden() {
	author := suite.createTestUser("author")
	member := suite.createTestUser("member")
	target := suite.createTestUser("target")
	project := suite.createTestProject("SoftDesk", author.ID)

	_, err := suite.projectService.AddContributor(author.ID, project.ID, member.ID)
	suite.Require().NoError(err)

	requestBody := map[string]interface{}{"user_id": target.ID}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/contributors", body, member.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.AddContributor(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestRemoveContributor_Success() {
	author := suite.createTestUser("author")
	member := suite.createTestUser("member")
	project := suite.createTestProject("SoftDesk", author.ID)

	_, err := suite.projectService.AddContributor(author.ID, project.ID, member.ID)
	suite.Require().NoError(err)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/contributors/2", nil, author.ID)
	suite.setIDParam(c, "id", project.ID)
	suite.setIDParam(c, "user_id", member.ID)

	suite.handler.RemoveContributor(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	contributors, err := suite.projectService.ListContributors(project.ID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), contributors, 1)
}

func (suite *ProjectHandlerTestSuite) TestRemoveContributor_MissingNotFound() {
	author := suite.createTestUser("author")
	stranger := suite.createTestUser("stranger")
	project := suite.createTestProject("SoftDesk", author.ID)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/contributors/2", nil, author.ID)
	suite.setIDParam(c, "id", project.ID)
	suite.setIDParam(c, "user_id", stranger.ID)

	suite.handler.RemoveContributor(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_AuthorOnly() {
	author := suite.createTestUser("author")
	other := suite.createTestUser("other")
	project := suite.createTestProject("SoftDesk", author.ID)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1", nil, other.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	c, w = suite.createAuthContext("DELETE", "/api/projects/1", nil, author.ID)
	suite.setIDParam(c, "id", project.ID)

	suite.handler.DeleteProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestListProjects_Pagination() {
	user := suite.createTestUser("author")

	for i := 0; i < 3; i++ {
		suite.createTestProject(fmt.Sprintf("Project %d", i), user.ID)
	}

	c, w := suite.createAuthContext("GET", "/api/projects", nil, user.ID)
	c.Request.URL.RawQuery = "page=1&limit=2"

	suite.handler.ListProjects(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Projects, 2)
	assert.Equal(suite.T(), int64(3), response.TotalCount)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}

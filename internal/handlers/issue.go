package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/softdesk/softdesk-api/internal/dto"
	apierrors "github.com/softdesk/softdesk-api/internal/errors"
	"github.com/softdesk/softdesk-api/internal/middleware"
	"github.com/softdesk/softdesk-api/internal/models"
	"github.com/softdesk/softdesk-api/internal/services"
	"github.com/softdesk/softdesk-api/internal/utils"
)

// IssueHandler coordinates issue HTTP handlers.
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// CreateIssue creates an issue on a project. Contributors only; authorship
// is forced to the caller.
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type CreateIssueRequest struct {
		Title       string               `json:"title" binding:"required,max=100"`
		Description string               `json:"description"`
		Status      models.IssueStatus   `json:"status"`
		Priority    models.IssuePriority `json:"priority"`
		Tag         models.IssueTag      `json:"tag"`
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.CreateIssue(services.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tag:         req.Tag,
		ProjectID:   projectID,
		AuthorID:    userID,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueDTO(*issue))
}

// ListIssues returns a project's issues in creation order.
func (h *IssueHandler) ListIssues(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	issues, total, err := h.issueService.ListIssues(projectID, params.Offset, params.Limit)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	issueDTOs := make([]dto.IssueDTO, len(issues))
	for i, issue := range issues {
		issueDTOs[i] = dto.ToIssueDTO(issue)
	}

	c.JSON(http.StatusOK, dto.IssueListResponse{
		Issues:     issueDTOs,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	})
}

// GetIssue returns a single issue.
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	issue, err := h.issueService.GetIssue(issueID)
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// UpdateIssue updates an issue. Contributors of its project only.
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateIssueRequest struct {
		Title       *string               `json:"title" binding:"omitempty,max=100"`
		Description *string               `json:"description"`
		Status      *models.IssueStatus   `json:"status"`
		Priority    *models.IssuePriority `json:"priority"`
		Tag         *models.IssueTag      `json:"tag"`
	}

	var req UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	issue, err := h.issueService.UpdateIssue(userID, issueID, services.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Tag:         req.Tag,
	})
	if err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIssueDTO(*issue))
}

// DeleteIssue deletes an issue and its comments. Contributors of its
// project only.
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	issueID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.issueService.DeleteIssue(userID, issueID); err != nil {
		respondIssueError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Issue deleted successfully",
	})
}

func respondIssueError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotProjectContributor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrIssueTitleRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

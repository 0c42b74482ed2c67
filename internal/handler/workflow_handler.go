package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/middleware"
	"github.com/agapechurch/chms-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// WorkflowHandler handles review/approval state transitions
type WorkflowHandler struct {
	service service.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(service service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{service: service}
}

type reviewCommentRequest struct {
	Comment string `json:"comment"`
}

func parseTarget(c *gin.Context) (domain.ContentType, string, bool) {
	ct, err := domain.ParseContentType(c.Param("type"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return "", "", false
	}
	id := c.Param("id")
	if id == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Content ID required", nil)
		return "", "", false
	}
	return ct, id, true
}

// SubmitForReview godoc
// @Summary      Submit content for review
// @Description  Moves DRAFT or REJECTED content into REVIEW
// @Tags         workflow
// @Produce      json
// @Security     BearerAuth
// @Param        type  path  string  true  "Content type (announcement|devotional)"
// @Param        id    path  string  true  "Content ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/review/{type}/{id} [post]
func (h *WorkflowHandler) SubmitForReview(c *gin.Context) {
	ct, id, ok := parseTarget(c)
	if !ok {
		return
	}

	item, err := h.service.SubmitForReview(middleware.GetActor(c), ct, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content_type": ct, "data": item})
}

// Approve godoc
// @Summary      Approve content in review
// @Description  Moves REVIEW content to SCHEDULED, or PUBLISHED when already due
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type     path  string                true   "Content type"
// @Param        id       path  string                true   "Content ID"
// @Param        request  body  reviewCommentRequest  false  "Optional review comment"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/approve/{type}/{id} [post]
func (h *WorkflowHandler) Approve(c *gin.Context) {
	ct, id, ok := parseTarget(c)
	if !ok {
		return
	}

	var req reviewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.service.Approve(middleware.GetActor(c), ct, id, req.Comment)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content_type": ct, "data": item})
}

// Reject godoc
// @Summary      Reject content in review
// @Description  Moves REVIEW content to REJECTED; a comment is mandatory
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        type     path  string                true  "Content type"
// @Param        id       path  string                true  "Content ID"
// @Param        request  body  reviewCommentRequest  true  "Rejection comment"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/reject/{type}/{id} [post]
func (h *WorkflowHandler) Reject(c *gin.Context) {
	ct, id, ok := parseTarget(c)
	if !ok {
		return
	}

	var req reviewCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.service.Reject(middleware.GetActor(c), ct, id, req.Comment)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content_type": ct, "data": item})
}

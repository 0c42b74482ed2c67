package handler

import (
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/middleware"
	"github.com/agapechurch/chms-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VersionHandler handles content version history
type VersionHandler struct {
	service service.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(service service.VersionService) *VersionHandler {
	return &VersionHandler{service: service}
}

type snapshotRequest struct {
	ContentID   string `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type restoreRequest struct {
	ContentID   string `json:"content_id" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	VersionID   string `json:"version_id" binding:"required"`
}

// Snapshot godoc
// @Summary      Snapshot content into history
// @Description  Copies the current state into the version history and bumps the live version
// @Tags         versions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  snapshotRequest  true  "Snapshot target"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/versions [post]
func (h *VersionHandler) Snapshot(c *gin.Context) {
	var req snapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ct, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	newVersion, err := h.service.Snapshot(middleware.GetActor(c), ct, req.ContentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "new_version": newVersion})
}

// History godoc
// @Summary      List version history
// @Description  Returns all snapshots of a content item, newest first
// @Tags         versions
// @Produce      json
// @Security     BearerAuth
// @Param        content_type  query  string  true  "Content type (announcement|devotional)"
// @Param        content_id    query  string  true  "Content ID"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /content/versions [get]
func (h *VersionHandler) History(c *gin.Context) {
	ct, err := domain.ParseContentType(c.Query("content_type"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	versions, err := h.service.History(ct, c.Query("content_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	common.SuccessResponse(c, http.StatusOK, versions)
}

// Restore godoc
// @Summary      Restore a historical version
// @Description  Overwrites the live content with a snapshot; the pre-restore state is backed up first
// @Tags         versions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  restoreRequest  true  "Restore target"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /content/versions [put]
func (h *VersionHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	ct, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	item, err := h.service.Restore(middleware.GetActor(c), ct, req.ContentID, req.VersionID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "content_type": ct, "data": item})
}

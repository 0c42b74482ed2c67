package handler

import (
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/internal/domain"
	"github.com/agapechurch/chms-backend/internal/middleware"
	"github.com/agapechurch/chms-backend/internal/service"
	"github.com/agapechurch/chms-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	service service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler
func NewAnnouncementHandler(service service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// List godoc
// @Summary      List published announcements
// @Description  Returns published announcements, urgent first, newest first
// @Tags         announcements
// @Produce      json
// @Param        page   query  int  false  "Page number"  default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  common.APIResponse
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	items, meta, err := h.service.ListPublished(page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.PagedResponse(c, http.StatusOK, items, meta)
}

// Mine godoc
// @Summary      List my announcements
// @Description  Returns the authenticated user's announcements in any status
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"  default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  common.APIResponse
// @Router       /announcements/mine [get]
func (h *AnnouncementHandler) Mine(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	items, meta, err := h.service.ListByAuthor(middleware.GetActor(c), page, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.PagedResponse(c, http.StatusOK, items, meta)
}

// Get godoc
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Param        id  path  string  true  "Announcement ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusOK, a)
}

// Create godoc
// @Summary      Create an announcement
// @Description  New announcements start in DRAFT at version 1
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateAnnouncementRequest  true  "Announcement"
// @Success      201  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req domain.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := h.service.Create(middleware.GetActor(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusCreated, a)
}

// Update godoc
// @Summary      Update an announcement
// @Description  Authors may edit their own DRAFT or REJECTED announcements; editors and above may edit any
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                            true  "Announcement ID"
// @Param        request  body  domain.UpdateAnnouncementRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req domain.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := h.service.Update(middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusOK, a)
}

// Delete godoc
// @Summary      Delete an announcement
// @Description  Removes the announcement together with its version history
// @Tags         announcements
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Announcement ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.GetActor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

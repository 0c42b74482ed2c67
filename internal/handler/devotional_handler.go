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

// DevotionalHandler handles devotional endpoints
type DevotionalHandler struct {
	service service.DevotionalService
}

// NewDevotionalHandler creates a new DevotionalHandler
func NewDevotionalHandler(service service.DevotionalService) *DevotionalHandler {
	return &DevotionalHandler{service: service}
}

// List godoc
// @Summary      List published devotionals
// @Description  Returns published devotionals, featured first, newest first
// @Tags         devotionals
// @Produce      json
// @Param        page   query  int  false  "Page number"  default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  common.APIResponse
// @Router       /devotionals [get]
func (h *DevotionalHandler) List(c *gin.Context) {
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
// @Summary      List my devotionals
// @Description  Returns the authenticated user's devotionals in any status
// @Tags         devotionals
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number"  default(1)
// @Param        limit  query  int  false  "Items per page"  default(20)
// @Success      200  {object}  common.APIResponse
// @Router       /devotionals/mine [get]
func (h *DevotionalHandler) Mine(c *gin.Context) {
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
// @Summary      Get a devotional
// @Tags         devotionals
// @Produce      json
// @Param        id  path  string  true  "Devotional ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /devotionals/{id} [get]
func (h *DevotionalHandler) Get(c *gin.Context) {
	d, err := h.service.Get(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusOK, d)
}

// Create godoc
// @Summary      Create a devotional
// @Description  New devotionals start in DRAFT at version 1
// @Tags         devotionals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateDevotionalRequest  true  "Devotional"
// @Success      201  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Router       /devotionals [post]
func (h *DevotionalHandler) Create(c *gin.Context) {
	var req domain.CreateDevotionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := h.service.Create(middleware.GetActor(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusCreated, d)
}

// Update godoc
// @Summary      Update a devotional
// @Description  Authors may edit their own DRAFT or REJECTED devotionals; editors and above may edit any
// @Tags         devotionals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                          true  "Devotional ID"
// @Param        request  body  domain.UpdateDevotionalRequest  true  "Fields to update"
// @Success      200  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /devotionals/{id} [put]
func (h *DevotionalHandler) Update(c *gin.Context) {
	var req domain.UpdateDevotionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	d, err := h.service.Update(middleware.GetActor(c), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	common.SuccessResponse(c, http.StatusOK, d)
}

// Delete godoc
// @Summary      Delete a devotional
// @Description  Removes the devotional together with its version history
// @Tags         devotionals
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Devotional ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /devotionals/{id} [delete]
func (h *DevotionalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(middleware.GetActor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

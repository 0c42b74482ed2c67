package handler

import (
	"net/http"

	"github.com/agapechurch/chms-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SchedulerHandler exposes the publish/archive sweep to the cron caller
type SchedulerHandler struct {
	service service.SchedulerService
}

// NewSchedulerHandler creates a new SchedulerHandler
func NewSchedulerHandler(service service.SchedulerService) *SchedulerHandler {
	return &SchedulerHandler{service: service}
}

// Run godoc
// @Summary      Run the publish/archive sweep
// @Description  Publishes due SCHEDULED content and archives expired announcements. Safe to call repeatedly.
// @Tags         scheduler
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  service.SweepReport
// @Failure      401  {object}  common.APIResponse
// @Failure      500  {object}  service.SweepReport
// @Router       /scheduler/run [get]
func (h *SchedulerHandler) Run(c *gin.Context) {
	report := h.service.Run()

	status := http.StatusOK
	if !report.Success {
		status = http.StatusInternalServerError
	}
	c.JSON(status, report)
}

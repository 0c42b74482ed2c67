package handler

import (
	"errors"
	"net/http"

	"github.com/agapechurch/chms-backend/internal/common"
	"github.com/agapechurch/chms-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps service errors onto HTTP status codes. Unexpected
// errors are logged server-side and never leak internals to the caller.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrInvalidState),
		errors.Is(err, common.ErrInvalidReference):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Forbidden", err)
	case errors.Is(err, common.ErrNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Resource not found", err)
	default:
		logger.Error("unexpected error: %v", err)
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

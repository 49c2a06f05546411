package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintraq/budget_tracker_app/internal/apperrors"
	"github.com/fintraq/budget_tracker_app/internal/dto"
	"github.com/fintraq/budget_tracker_app/internal/middleware"
)

// respondSuccess writes the success envelope around a payload.
func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, dto.APIResponse{Success: true, Data: data})
}

// respondList writes the success envelope around a list payload, including
// the item count.
func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: data, Count: &count})
}

// respondMessage writes the success envelope with only a message.
func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.APIResponse{Success: true, Message: msg})
}

// respondBadRequest writes a failure envelope for malformed input.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.APIResponse{Success: false, Message: msg})
}

// respondError maps a service error onto an HTTP status and writes the
// failure envelope. Unrecognized errors become an opaque 500; their details
// stay in the logs.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status int
	msg := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrBudgetInactive),
		errors.Is(err, apperrors.ErrDateOutOfRange),
		errors.Is(err, apperrors.ErrInvalidPeriod):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		msg = "Internal server error"
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
	}

	if status != http.StatusInternalServerError {
		logger.Warn("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, dto.APIResponse{Success: false, Message: msg})
}

// requireUserID pulls the authenticated user from the context, aborting with
// 401 when the auth middleware did not run.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.APIResponse{Success: false, Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}

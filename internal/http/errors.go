package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-hub/internal/service"
)

// statusFor traduce los tipos de error del servicio a códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidOperation):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError responde con {"error": ...}. Los 5xx se loguean y no
// exponen el detalle interno.
func writeServiceError(c *gin.Context, logger *zap.Logger, action string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(action+" failed", zap.Error(err), zap.Int("status", status))
		msg := "internal error"
		if status == http.StatusServiceUnavailable {
			msg = "service unavailable"
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, logger *zap.Logger, action string, err error) {
	logger.Warn("invalid "+action+" request", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

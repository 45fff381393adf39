package handlers

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/currency_converter/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError writes err as {"error": message} with the status its kind maps to.
// Store failures are logged at ERROR and their driver detail is not exposed.
func respondError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		logger.Error(msg, slog.String("error", err.Error()), slog.Int("status", status))
		c.JSON(status, gin.H{"error": publicMessage(err)})
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, apperrors.ErrResourceClosed) {
		return apperrors.ErrResourceClosed.Error()
	}
	return "internal server error"
}

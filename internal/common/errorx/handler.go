package errorx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler translates typed failures into HTTP responses. Uncategorized
// errors are logged with full detail and surfaced as a generic 500.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// JSON writes the HTTP representation of err and aborts the request.
func (h *Handler) JSON(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := Convert(err)
	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("internal error",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(apiErr.HTTPStatus, gin.H{"error": apiErr})
}

// Convert maps any error to an APIError, hiding storage detail behind a
// generic internal error.
func Convert(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &APIError{
		Code:       "INTERNAL",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
	}
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// HandleAPIError translates an error into a plain text response and aborts
// the handler chain. Domain errors carry their client message; anything
// unrecognised becomes a 500 and is attached to the context for the request
// logger.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.Abort()
		c.String(http.StatusNotFound, apperrors.Message(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.Abort()
		c.String(http.StatusBadRequest, apperrors.Message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.Abort()
		c.String(http.StatusConflict, apperrors.Message(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		c.Abort()
		c.String(http.StatusRequestEntityTooLarge, "request entity too large")
	default:
		_ = c.Error(err)
		c.Abort()
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// NotFound answers requests no route matched, the way "Cannot GET /path" reads.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusNotFound, "Cannot %s %s", c.Request.Method, requestPath(c.Request))
	}
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/metrics"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// ValidatedBodyKey is the context key holding the validated request body
const ValidatedBodyKey = "validatedBody"

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 100 << 10

// ValidateCourse validates the request body as a course payload and stores
// the result under ValidatedBodyKey. Bodies whose content type is not JSON
// are read as an empty object.
func ValidateCourse(v *validation.CourseValidator, m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if isJSON(c.ContentType()) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
			raw, err := c.GetRawData()
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					HandleAPIError(c, apperrors.ErrPayloadTooLarge)
					return
				}
				HandleAPIError(c, fmt.Errorf("reading request body: %w", err))
				return
			}
			body = raw
		}

		req, err := v.ValidateCourse(body)
		if err != nil {
			if errors.Is(err, apperrors.ErrValidationFailed) {
				m.RecordValidationFailure()
			}
			HandleAPIError(c, err)
			return
		}

		c.Set(ValidatedBodyKey, req)
		c.Next()
	}
}

// ValidatedCourse returns the body stored by ValidateCourse
func ValidatedCourse(c *gin.Context) (*dto.CourseRequest, bool) {
	value, exists := c.Get(ValidatedBodyKey)
	if !exists {
		return nil, false
	}
	req, ok := value.(*dto.CourseRequest)
	return req, ok
}

func isJSON(contentType string) bool {
	return contentType == gin.MIMEJSON || strings.HasSuffix(contentType, "+json")
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/pkg/metrics"
)

// unmatchedRoute labels requests that did not hit a registered route, keeping
// label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per route template.
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/service"
)

// Metrics times every request and feeds the HTTP histograms. Routes are
// labelled by their template (e.g. /api/v1/slots) so path parameters do
// not fan out the label space; requests that match no route share one
// "unmatched" label.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// Package middleware holds gin middleware specific to post resolution.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// TrackingKey is the gin context key set by TrackingParams.
const TrackingKey = "has_tracking"

// DefaultTrackingParams are the query parameters that mark social click-through traffic.
var DefaultTrackingParams = []string{"fbclid"}

// TrackingParams sets c.Set(TrackingKey, true) when any of params has a
// non-empty value in the query string. An empty params uses DefaultTrackingParams.
func TrackingParams(params []string) gin.HandlerFunc {
	if len(params) == 0 {
		params = DefaultTrackingParams
	}
	return func(c *gin.Context) {
		if hasTrackingParam(c, params) {
			c.Set(TrackingKey, true)
		}
		c.Next()
	}
}

// HasTracking reports whether TrackingParams flagged the request.
func HasTracking(c *gin.Context) bool {
	return c.GetBool(TrackingKey)
}

func hasTrackingParam(c *gin.Context, params []string) bool {
	for _, p := range params {
		if c.Query(p) != "" {
			return true
		}
	}
	return false
}

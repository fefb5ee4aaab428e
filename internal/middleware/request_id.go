package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey = "request_id"
	requestIDHeaderName = "X-Request-ID"
	maxRequestIDLength  = 128
)

// RequestIDFromContext returns a request ID or an empty string when unavailable.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}

// RequestIDMiddleware injects request IDs into context/headers and logs every request with the ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()
		requestID := normalizeRequestID(c.GetHeader(requestIDHeaderName))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(requestIDContextKey, requestID)
		c.Writer.Header().Set(requestIDHeaderName, requestID)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		log.Printf(
			"request_id=%s method=%s path=%s status=%d latency_ms=%.2f client_ip=%s",
			requestID,
			c.Request.Method,
			path,
			c.Writer.Status(),
			float64(time.Since(startedAt).Microseconds())/1000.0,
			c.ClientIP(),
		)
	}
}

func normalizeRequestID(raw string) string {
	candidate := strings.TrimSpace(raw)
	if len(candidate) > maxRequestIDLength {
		candidate = candidate[:maxRequestIDLength]
	}
	return candidate
}

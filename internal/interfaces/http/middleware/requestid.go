// Package middleware provides the gin middleware chain of the API server:
// request identification, structured request logging, CORS and metrics.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the request correlation identifier.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key the identifier is stored under.
const requestIDKey = "request_id"

// RequestID propagates an inbound X-Request-ID or assigns a fresh UUID, and
// echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation identifier of the current request.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Key shared with respond.Error, which cannot import this package.
const requestIDKey = "request_id"

// RequestID ensures every analysis request carries an ID, minting a
// UUID when the client did not send X-Request-Id. The ID is echoed on
// the response header and attached to every telemetry line and error
// envelope for the request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(requestIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

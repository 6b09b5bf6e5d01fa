package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDContextKey = "request_id"

func requestIDFromContext(c *gin.Context) string {
	if val, ok := c.Get(requestIDContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

// usernameFromContext surfaces the caller-asserted username for audit
// lines. Like everything identity-related here, it is unverified.
func usernameFromContext(c *gin.Context) *string {
	if header := c.GetHeader("X-Username"); header != "" {
		return &header
	}
	if query := c.Query("username"); query != "" {
		return &query
	}
	return nil
}

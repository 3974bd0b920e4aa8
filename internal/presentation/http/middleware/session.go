// Package middleware provides HTTP middleware for the builder API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/microsite-go/internal/infrastructure/sessions"
)

// SessionHeader carries the builder session identifier
const SessionHeader = "X-Microsite-Session-ID"

const sessionContextKey = "micrositeSessionID"

// SessionMiddleware resolves the builder session for a request. A valid
// provided id bound to the same instance is reused; anything else gets a
// fresh session lazily. The resolved id is echoed back in the response so
// clients can persist it.
func SessionMiddleware(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		instanceID := c.Param("instanceId")
		sessionID := store.Acquire(instanceID, c.GetHeader(SessionHeader))

		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id resolved for this request
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(sessionContextKey); exists {
		if sessionID, ok := id.(string); ok {
			return sessionID
		}
	}
	return ""
}

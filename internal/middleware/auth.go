package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
	"github.com/giodelabarrera/inskygram/internal/auth"
	"github.com/giodelabarrera/inskygram/internal/logic"
)

// Auth requires a valid bearer token and stores the verified username in the
// request context.
func Auth(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := usernameFromHeader(c, m)
		if !ok {
			c.Error(api_error.NewFromStr("authorization required", http.StatusUnauthorized))
			c.Abort()
			return
		}

		c.Set("Username", username)
		c.Next()
	}
}

// OptionalAuth extracts the username when a valid token is present and marks
// the caller anonymous otherwise. Protected targets are still gated by the
// visibility policy downstream.
func OptionalAuth(m *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := usernameFromHeader(c, m)
		if !ok {
			username = logic.Anonymous
		}

		c.Set("Username", username)
		c.Next()
	}
}

func usernameFromHeader(c *gin.Context, m *auth.Manager) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	username, err := m.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return "", false
	}

	return username, true
}

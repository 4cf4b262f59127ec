package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/logic"
)

// LogicProvider makes the logic layer available to handlers through the
// request context.
func LogicProvider(l *logic.Logic) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("logic", l)
		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
)

// ErrorHandler turns the first error attached to the request into the JSON
// error response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			api_error.ToResponse(c, c.Errors[0].Err)
		}
	}
}

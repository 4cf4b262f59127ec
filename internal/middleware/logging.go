package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDProvider tags each request with an id and logs its arrival.
func RequestIDProvider() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		log.Printf("request %s >> %s | %s | %s |",
			requestID, c.ClientIP(), c.Request.Method, c.Request.URL.Path)

		c.Set("RequestID", requestID)
		c.Next()
	}
}

// ErrorLogging logs every error attached to the request after the handler
// chain completes.
func ErrorLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID, _ := c.Get("RequestID")
		status := c.Writer.Status()
		for i := 0; i < len(c.Errors); i++ {
			log.Printf("request %v >> %d | %s | %s | error: %s",
				requestID, status, c.Request.Method, c.Request.URL.Path, c.Errors[i].Err.Error())
		}
	}
}

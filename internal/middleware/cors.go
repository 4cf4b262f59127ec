package middleware

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AddAllowHeaders("Authorization", "Refresh-Token")
	config.AllowCredentials = true

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		config.AllowOrigins = []string{origins}
	} else {
		config.AllowOrigins = []string{"http://localhost:3000"}
	}

	return cors.New(config)
}

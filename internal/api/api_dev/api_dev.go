package api_dev

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API OK",
	})
}

func AuthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "you are authorised",
		"username": c.MustGet("Username"),
	})
}

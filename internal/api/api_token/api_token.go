package api_token

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
	"github.com/giodelabarrera/inskygram/internal/api/api_handler"
)

// Refresh exchanges a valid refresh token for a new access token.
func Refresh(c *gin.Context) {
	l := api_handler.GetLogic(c)

	refreshToken := c.GetHeader("Refresh-Token")
	if refreshToken == "" {
		c.Error(api_error.NewFromStr("refresh token header missing", http.StatusUnauthorized))
		return
	}

	accessToken, err := l.RefreshAccessToken(c.Request.Context(), refreshToken)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

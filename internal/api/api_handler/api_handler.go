package api_handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
	"github.com/giodelabarrera/inskygram/internal/logic"
)

// GetLogic returns the logic layer installed by middleware.LogicProvider.
func GetLogic(c *gin.Context) *logic.Logic {
	return c.MustGet("logic").(*logic.Logic)
}

// Viewer returns the caller identity set by the auth middleware, or the
// anonymous identity when none was set.
func Viewer(c *gin.Context) string {
	return c.GetString("Username")
}

// Fail attaches the domain error to the request with its HTTP mapping; the
// trailing error handler renders it.
func Fail(c *gin.Context, err error) {
	c.Error(api_error.FromLogic(err, Viewer(c) != logic.Anonymous))
}

// PageQuery parses the optional limit/page query parameters. Absent values
// default to zero, which means the whole collection.
func PageQuery(c *gin.Context) (int, int, error) {
	limit, err := intQuery(c, "limit")
	if err != nil {
		return 0, 0, err
	}

	page, err := intQuery(c, "page")
	if err != nil {
		return 0, 0, err
	}

	return limit, page, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, api_error.NewFromStr("invalid "+name+" parameter", http.StatusBadRequest)
	}

	return n, nil
}

// PostID parses the postID path parameter.
func PostID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("postID"))
	if err != nil {
		return uuid.Nil, api_error.NewFromStr("invalid post id", http.StatusBadRequest)
	}
	return id, nil
}

package api_user

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
	"github.com/giodelabarrera/inskygram/internal/api/api_handler"
	"github.com/giodelabarrera/inskygram/internal/logic"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Register(c *gin.Context) {
	l := api_handler.GetLogic(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user registered correctly"})
}

func Login(c *gin.Context) {
	l := api_handler.GetLogic(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	tokens, err := l.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func Retrieve(c *gin.Context) {
	l := api_handler.GetLogic(c)

	user, err := l.RetrieveUser(c.Request.Context(), api_handler.Viewer(c), c.Param("username"))
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	l := api_handler.GetLogic(c)

	var req logic.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.UpdateProfile(c.Request.Context(), api_handler.Viewer(c), req); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user updated correctly"})
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func UpdatePassword(c *gin.Context) {
	l := api_handler.GetLogic(c)

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.UpdatePassword(c.Request.Context(), api_handler.Viewer(c), req.OldPassword, req.NewPassword); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password updated correctly"})
}

func UpdateAvatar(c *gin.Context) {
	l := api_handler.GetLogic(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.UpdateAvatar(c.Request.Context(), api_handler.Viewer(c), file.Filename, data); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "avatar updated correctly"})
}

type followRequest struct {
	TargetUsername string `json:"target_username"`
}

func Follow(c *gin.Context) {
	l := api_handler.GetLogic(c)

	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.ToggleFollow(c.Request.Context(), api_handler.Viewer(c), req.TargetUsername); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "toggle follow correctly"})
}

func Followers(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	followers, err := l.ListUserFollowers(c.Request.Context(), api_handler.Viewer(c), c.Param("username"), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, followers)
}

func Followings(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	followings, err := l.ListUserFollowings(c.Request.Context(), api_handler.Viewer(c), c.Param("username"), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, followings)
}

func Posts(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	posts, err := l.ListUserPosts(c.Request.Context(), api_handler.Viewer(c), c.Param("username"), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func SavedPosts(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	saved, err := l.ListUserSavedPosts(c.Request.Context(), api_handler.Viewer(c), c.Param("username"), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func Stats(c *gin.Context) {
	l := api_handler.GetLogic(c)

	stats, err := l.RetrieveUserStats(c.Request.Context(), c.Param("username"))
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func Wall(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	posts, err := l.ListUserWall(c.Request.Context(), api_handler.Viewer(c), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func Search(c *gin.Context) {
	l := api_handler.GetLogic(c)

	users, err := l.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

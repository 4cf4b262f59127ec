package api_post

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_error"
	"github.com/giodelabarrera/inskygram/internal/api/api_handler"
)

func New(c *gin.Context) {
	l := api_handler.GetLogic(c)

	file, err := c.FormFile("image")
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

	caption := c.PostForm("caption")
	location := c.PostForm("location")

	postID, err := l.CreatePost(c.Request.Context(), api_handler.Viewer(c), file.Filename, data, caption, location)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": postID})
}

func View(c *gin.Context) {
	l := api_handler.GetLogic(c)

	postID, err := api_handler.PostID(c)
	if err != nil {
		c.Error(err)
		return
	}

	post, err := l.RetrievePost(c.Request.Context(), postID, api_handler.Viewer(c))
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func Like(c *gin.Context) {
	l := api_handler.GetLogic(c)

	postID, err := api_handler.PostID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := l.ToggleLike(c.Request.Context(), api_handler.Viewer(c), postID); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "toggle like correctly"})
}

func Save(c *gin.Context) {
	l := api_handler.GetLogic(c)

	postID, err := api_handler.PostID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := l.ToggleSave(c.Request.Context(), api_handler.Viewer(c), postID); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "toggle save correctly"})
}

type commentRequest struct {
	Description string `json:"description"`
}

func Comment(c *gin.Context) {
	l := api_handler.GetLogic(c)

	postID, err := api_handler.PostID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(api_error.New(err, http.StatusBadRequest))
		return
	}

	if err := l.AddComment(c.Request.Context(), api_handler.Viewer(c), postID, req.Description); err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "comment added correctly"})
}

func Explore(c *gin.Context) {
	l := api_handler.GetLogic(c)

	limit, page, err := api_handler.PageQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	posts, err := l.ListExplorePosts(c.Request.Context(), api_handler.Viewer(c), limit, page)
	if err != nil {
		api_handler.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

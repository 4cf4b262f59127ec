package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/giodelabarrera/inskygram/internal/api/api_dev"
	"github.com/giodelabarrera/inskygram/internal/api/api_post"
	"github.com/giodelabarrera/inskygram/internal/api/api_token"
	"github.com/giodelabarrera/inskygram/internal/api/api_user"
	"github.com/giodelabarrera/inskygram/internal/auth"
	"github.com/giodelabarrera/inskygram/internal/database"
	"github.com/giodelabarrera/inskygram/internal/logic"
	"github.com/giodelabarrera/inskygram/internal/media"
	"github.com/giodelabarrera/inskygram/internal/middleware"
	"github.com/giodelabarrera/inskygram/internal/store"
)

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Println("Starting server...")

	driver := envOr("DATABASE_DRIVER", "postgres")
	dsn := envOr("DATABASE_URL", "user=postgres dbname=inskygram sslmode=prefer host=localhost")
	mediaDir := envOr("MEDIA_DIR", "./public/uploads")
	baseURL := envOr("BASE_URL", "http://localhost:8080")

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	db, err := database.Connect(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Successfully connected to database.")

	s := store.New(db)
	if err := s.Migrate(context.Background()); err != nil {
		log.Fatal(err)
	}

	manager := auth.NewManager([]byte(secret))
	l := logic.New(s, media.NewDisk(mediaDir, baseURL), manager)

	r := gin.New()
	r.Use(
		middleware.PanicRecovery(),
		middleware.CORS(),
		middleware.RequestIDProvider(),
		middleware.ErrorLogging(),
		middleware.ErrorHandler(),
		middleware.LogicProvider(l),
	)

	r.Static("/files", mediaDir)

	{
		v1 := r.Group("/api/v1")
		v1.GET("/healthcheck", api_dev.HealthCheck)
		v1.GET("/authcheck", middleware.Auth(manager), api_dev.AuthCheck)
		v1.POST("/token/refresh", api_token.Refresh)

		v1.GET("/search", api_user.Search)
		v1.GET("/wall", middleware.Auth(manager), api_user.Wall)
		v1.GET("/explore", middleware.OptionalAuth(manager), api_post.Explore)

		users := v1.Group("/users")
		users.POST("/register", api_user.Register)
		users.POST("/login", api_user.Login)
		users.PATCH("/me", middleware.Auth(manager), api_user.UpdateProfile)
		users.PATCH("/me/password", middleware.Auth(manager), api_user.UpdatePassword)
		users.POST("/me/avatar", middleware.Auth(manager), api_user.UpdateAvatar)
		users.POST("/actions/follow", middleware.Auth(manager), api_user.Follow)
		users.GET("/:username", middleware.OptionalAuth(manager), api_user.Retrieve)
		users.GET("/:username/followers", middleware.OptionalAuth(manager), api_user.Followers)
		users.GET("/:username/followings", middleware.OptionalAuth(manager), api_user.Followings)
		users.GET("/:username/posts", middleware.OptionalAuth(manager), api_user.Posts)
		users.GET("/:username/saved", middleware.OptionalAuth(manager), api_user.SavedPosts)
		users.GET("/:username/stats", api_user.Stats)

		posts := v1.Group("/posts")
		posts.POST("", middleware.Auth(manager), api_post.New)
		posts.GET("/:postID", middleware.OptionalAuth(manager), api_post.View)
		posts.POST("/:postID/actions/like", middleware.Auth(manager), api_post.Like)
		posts.POST("/:postID/actions/save", middleware.Auth(manager), api_post.Save)
		posts.POST("/:postID/comments", middleware.Auth(manager), api_post.Comment)
	}

	r.Run()
}

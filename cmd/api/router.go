package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yamdb-backend/internal/shared/middleware"
	"yamdb-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		c.Metrics.Middleware(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupTitleRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/token", c.UserHandler.Token)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticate := middleware.Authenticate(c.JWTManager, c.IdentityResolver())

	users := v1.Group("/users")
	users.Use(authenticate)
	{
		// The /me routes must not be shadowed by the admin directory.
		users.GET("/me", c.UserHandler.GetProfile)
		users.PATCH("/me", c.UserHandler.UpdateProfile)

		admin := users.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", c.UserHandler.List)
			admin.POST("", c.UserHandler.Create)
			admin.GET("/:username", c.UserHandler.Get)
			admin.PATCH("/:username", c.UserHandler.Update)
			admin.DELETE("/:username", c.UserHandler.Delete)
		}
	}
}

func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	optional := middleware.AuthenticateOptional(c.JWTManager, c.IdentityResolver())
	adminWrite := []gin.HandlerFunc{
		middleware.Authenticate(c.JWTManager, c.IdentityResolver()),
		middleware.AdminWritePublicRead(),
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", optional, c.CatalogHandler.ListCategories)
		categories.POST("", append(adminWrite, c.CatalogHandler.CreateCategory)...)
		categories.GET("/:slug", c.CatalogHandler.RetrieveDisabled)
		categories.DELETE("/:slug", append(adminWrite, c.CatalogHandler.DeleteCategory)...)
	}

	genres := v1.Group("/genres")
	{
		genres.GET("", optional, c.CatalogHandler.ListGenres)
		genres.POST("", append(adminWrite, c.CatalogHandler.CreateGenre)...)
		genres.GET("/:slug", c.CatalogHandler.RetrieveDisabled)
		genres.DELETE("/:slug", append(adminWrite, c.CatalogHandler.DeleteGenre)...)
	}
}

func setupTitleRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticate := middleware.Authenticate(c.JWTManager, c.IdentityResolver())
	optional := middleware.AuthenticateOptional(c.JWTManager, c.IdentityResolver())
	adminWrite := []gin.HandlerFunc{authenticate, middleware.AdminWritePublicRead()}

	titles := v1.Group("/titles")
	{
		titles.GET("", optional, c.TitleHandler.List)
		titles.POST("", append(adminWrite, c.TitleHandler.Create)...)
		titles.GET("/:id", optional, c.TitleHandler.Get)
		titles.PUT("/:id", c.TitleHandler.ReplaceDisabled)
		titles.PATCH("/:id", append(adminWrite, c.TitleHandler.Update)...)
		titles.DELETE("/:id", append(adminWrite, c.TitleHandler.Delete)...)

		reviews := titles.Group("/:id/reviews")
		{
			reviews.GET("", optional, c.ReviewHandler.ListReviews)
			reviews.POST("", authenticate, c.ReviewHandler.CreateReview)
			reviews.GET("/:review_id", optional, c.ReviewHandler.GetReview)
			reviews.PUT("/:review_id", c.ReviewHandler.ReplaceDisabled)
			reviews.PATCH("/:review_id", authenticate, c.ReviewHandler.UpdateReview)
			reviews.DELETE("/:review_id", authenticate, c.ReviewHandler.DeleteReview)

			comments := reviews.Group("/:review_id/comments")
			{
				comments.GET("", optional, c.ReviewHandler.ListComments)
				comments.POST("", authenticate, c.ReviewHandler.CreateComment)
				comments.GET("/:comment_id", optional, c.ReviewHandler.GetComment)
				comments.PUT("/:comment_id", c.ReviewHandler.ReplaceDisabled)
				comments.PATCH("/:comment_id", authenticate, c.ReviewHandler.UpdateComment)
				comments.DELETE("/:comment_id", authenticate, c.ReviewHandler.DeleteComment)
			}
		}
	}
}

// healthCheckHandler reports liveness of the API and its backing
// services.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			dbStatus = "down"
		}

		redisStatus := "up"
		if err := c.Redis.HealthCheck(ctx.Request.Context()); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "up" || redisStatus != "up" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":      overall,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}

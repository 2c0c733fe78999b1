package handler

import (
	"net/http"

	"watchmatch/backend/internal/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes mounts the full API surface on the given engine. Paths
// under /api are kept compatible with the original client.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
			authRoutes.GET("/user", auth.AuthMiddleware(), h.CurrentUser)
			authRoutes.POST("/logout", auth.AuthMiddleware(), h.Logout)
		}

		// User routes (protected)
		userRoutes := api.Group("/user")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.PATCH("/preferences", h.UpdatePreferences)
		}

		// Partner routes (protected)
		partnerRoutes := api.Group("/partner")
		partnerRoutes.Use(auth.AuthMiddleware())
		{
			partnerRoutes.POST("/request", h.SendPartnerRequest)
			partnerRoutes.GET("/requests", h.ListPartnerRequests)
			partnerRoutes.POST("/request/:id/respond", h.RespondPartnerRequest)
		}

		// Movie routes
		movieRoutes := api.Group("/movies")
		{
			movieRoutes.GET("/discover", auth.OptionalAuthMiddleware(), h.DiscoverMovies)
			movieRoutes.GET("/:id", h.MovieDetail)
			movieRoutes.POST("/swipe", auth.AuthMiddleware(), h.RecordSwipe)
		}

		api.GET("/matches", auth.AuthMiddleware(), h.ListMatches)
	}
}

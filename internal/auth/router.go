package auth

import (
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all auth routes
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuth(cfg))
		{
			protected.GET("/me", controller.GetMe)
		}
	}
}

package bookings

import (
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth(cfg))
	{
		bookings.GET("/week-count", controller.WeekCount) // GET /api/bookings/week-count
		bookings.POST("", controller.CreateBooking)       // POST /api/bookings
		bookings.GET("", controller.GetUserBookings)      // GET /api/bookings
	}
}

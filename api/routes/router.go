package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brianstm/kevii-gym-booking-app/internal/auth"
	"github.com/brianstm/kevii-gym-booking-app/internal/bookings"
	"github.com/brianstm/kevii-gym-booking-app/internal/notifications"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/database"
	"github.com/brianstm/kevii-gym-booking-app/pkg/cache"
)

// Router holds all route dependencies.
type Router struct {
	config   *config.Config
	db       *database.DB
	cache    cache.Service
	producer notifications.Producer
}

func NewRouter(cfg *config.Config, db *database.DB, cacheSvc cache.Service, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		cache:    cacheSvc,
		producer: producer,
	}
}

// SetupRoutes configures all application routes.
func (r *Router) SetupRoutes(engine *gin.Engine) error {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		if err := r.setupBookingRoutes(api); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "kevii-gym-booking",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "kevii-gym-booking",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "operational",
			"timestamp": time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController, r.config)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) error {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService, err := bookings.NewService(bookingRepo, r.cache, r.producer, r.config)
	if err != nil {
		return err
	}
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, r.config)
	return nil
}

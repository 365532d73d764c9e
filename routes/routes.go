package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the slot and date query endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine) {
	api := r.Group("/api/availability")
	{
		api.GET("/slots", handlers.GetAvailableSlots)
		api.GET("/dates", handlers.GetAvailableDates)
	}
}

// RegisterBookingRoutes registers the booking flow endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.POST("", handlers.CreateBooking)
		api.DELETE("/:id", handlers.CancelBooking)
	}
}

// RegisterProviderRoutes registers provider and schedule management.
func RegisterProviderRoutes(r *gin.Engine) {
	api := r.Group("/api/providers")
	{
		api.POST("", handlers.CreateProvider)
		api.GET("/:id", handlers.GetProvider)
		api.PUT("/:id/calendar", handlers.UpdateCalendarConnection)
		api.GET("/:id/rules", handlers.GetAvailabilityRules)
		api.PUT("/:id/rules", handlers.ReplaceAvailabilityRules)
		api.GET("/:id/blackouts", handlers.GetBlackoutRanges)
		api.PUT("/:id/blackouts", handlers.ReplaceBlackoutRanges)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())
	r.Use(utils.ErrorHandler())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r)
	RegisterBookingRoutes(r)
	RegisterProviderRoutes(r)
}

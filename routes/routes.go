package routes

import (
	"github.com/gin-gonic/gin"

	"shutterbook/handlers"
)

// RegisterRoutes registers all endpoints for the booking engine.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, rulesHandler *handlers.RulesHandler) {
	r.GET("/health", handlers.Health)

	photographers := r.Group("/api/photographers")
	{
		photographers.GET("/:id/availability", bookingHandler.GetAvailability)
		photographers.GET("/:id/booking-rules", rulesHandler.GetRules)
		photographers.PUT("/:id/booking-rules", rulesHandler.PutRules)
		photographers.DELETE("/:id/booking-rules", rulesHandler.DeleteRules)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("/validate", bookingHandler.ValidateBooking)
		bookings.POST("/quote", bookingHandler.QuoteBooking)
		bookings.POST("", bookingHandler.ConfirmBooking)
		bookings.PATCH("/:id/status", bookingHandler.UpdateBookingStatus)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
	}
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", handlers.CreateBooking)
	bookings.Get("", handlers.GetMyBookings)
	bookings.Get("/teaching", handlers.GetMyTutorBookings)
	bookings.Put("/:bookingId/cancel", handlers.CancelBooking)
	bookings.Put("/:bookingId/complete", handlers.CompleteBooking)
	bookings.Post("/:bookingId/review", handlers.CreateReview)
}

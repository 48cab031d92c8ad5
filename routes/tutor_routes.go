package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Student-facing discovery.
	tutors := api.Group("/tutors", middleware.Protected())
	tutors.Get("", handlers.ListVerifiedTutors)
	tutors.Get("/:tutorId", handlers.GetTutorProfile)
	tutors.Get("/:tutorId/availability", handlers.GetTutorAvailability)

	api.Post("/tutor-applications", middleware.Protected(), handlers.ApplyToBeTutor)

	// Tutor console.
	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())
	tutor.Post("/availability", handlers.CreateAvailabilitySlot)
	tutor.Get("/availability", handlers.GetMyAvailability)
	tutor.Put("/availability/:slotId", handlers.UpdateAvailabilitySlot)
	tutor.Delete("/availability/:slotId", handlers.DeleteAvailabilitySlot)

	tutor.Post("/language-change-requests", handlers.SubmitLanguageChangeRequest)
	tutor.Get("/language-change-requests", handlers.GetMyLanguageChangeRequests)

	tutor.Get("/earnings", handlers.GetMyEarnings)
	tutor.Post("/payout-requests", handlers.RequestPayout)
	tutor.Get("/payout-requests", handlers.GetMyPayoutRequests)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Post("/room", handlers.CreateDailyRoom)
	sessions.Get("/:bookingId/presence", handlers.SessionPresenceUpgrade, handlers.SessionPresence)
}

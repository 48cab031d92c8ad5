package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetMyProfile)
	profile.Put("/me", handlers.UpdateMyProfile)
	profile.Get("/me/transactions", handlers.GetMyCreditTransactions)
}

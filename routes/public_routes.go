package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	catalogs := api.Group("/catalogs")
	catalogs.Get("/countries", handlers.GetCountries)
	catalogs.Get("/spoken-languages", handlers.GetSpokenLanguages)
	catalogs.Get("/platform-languages", handlers.GetPlatformLanguages)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected())
	reports.Post("", handlers.CreateReport)
	reports.Get("", handlers.GetMyReports)
	reports.Get("/:reportId", handlers.GetReport)
}

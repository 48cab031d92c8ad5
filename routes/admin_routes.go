package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/applications/pending", handlers.ListPendingApplications)
	admin.Put("/applications/:tutorId", handlers.ManageApplication)
	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	admin.Get("/language-change-requests", handlers.ListLanguageChangeRequests)
	admin.Patch("/language-change-requests/:requestId", handlers.ApproveLanguageChangeRequest)
	admin.Delete("/language-change-requests/:requestId", handlers.DenyLanguageChangeRequest)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)

	admin.Get("/payout-requests", handlers.ListPayoutRequests)
	admin.Post("/payout-requests/:requestId/process", handlers.ProcessPayoutRequest)

	admin.Get("/bookings", handlers.AdminGetAllBookings)
	admin.Get("/transactions", handlers.AdminGetTransactions)

	reports := admin.Group("/reports")
	reports.Get("", handlers.ListReports)
	reports.Put("/:reportId/resolve", handlers.ResolveReport)

	catalogs := admin.Group("/catalogs")
	catalogs.Post("/countries", handlers.CreateCountry)
	catalogs.Post("/spoken-languages", handlers.CreateSpokenLanguage)
	catalogs.Post("/platform-languages", handlers.CreatePlatformLanguage)
	catalogs.Put("/platform-languages/:languageId/status", handlers.TogglePlatformLanguage)
}

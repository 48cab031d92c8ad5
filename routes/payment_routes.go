package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
	"github.com/kiprotich-dev/lingua_connect/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments")
	payments.Post("/checkout", middleware.Protected(), handlers.BuyCredits)
	// Called by the checkout provider, not by signed-in users.
	payments.Post("/webhook", handlers.CheckoutWebhook)
}

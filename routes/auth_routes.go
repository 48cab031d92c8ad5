package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kiprotich-dev/lingua_connect/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.SignUp)
	auth.Post("/verify-otp", handlers.VerifyOTP)
	auth.Post("/resend-otp", handlers.ResendOTP)
	auth.Post("/login", handlers.SignIn)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/reset-password", handlers.ResetPassword)
}

package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Signature-authenticated, no session middleware.
	api.Post("/stripe/webhook", handlers.HandleStripeWebhook)
}

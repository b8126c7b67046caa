package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/time-slots", handlers.ListBookableTimeSlots)
	api.Get("/products", handlers.ListProducts)
	api.Get("/products/:productId", handlers.GetProduct)
}

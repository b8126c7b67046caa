package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/fathallah7/health-clinic/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/logout", middleware.Protected(), handlers.LogoutUser)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)
}

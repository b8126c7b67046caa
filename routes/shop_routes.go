package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/fathallah7/health-clinic/middleware"
	"github.com/gofiber/fiber/v2"
)

func ShopRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cart := api.Group("/cart", middleware.Protected())
	cart.Get("", handlers.GetCart)
	cart.Post("", handlers.AddToCart)
	cart.Put("/:cartItemId", handlers.UpdateCartItem)
	cart.Delete("/:cartItemId", handlers.RemoveCartItem)

	orders := api.Group("/orders", middleware.Protected())
	orders.Get("", handlers.ListMyOrders)
	orders.Post("/checkout", handlers.Checkout)

	addresses := api.Group("/addresses", middleware.Protected())
	addresses.Get("", handlers.ListAddresses)
	addresses.Post("", handlers.CreateAddress)
	addresses.Put("/:addressId", handlers.UpdateAddress)
	addresses.Delete("/:addressId", handlers.DeleteAddress)
}

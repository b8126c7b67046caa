package handlers

import (
	"fmt"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/notifications"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
)

func ListMyOrders(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	orders, svcErr := services.ListOrders(database.DB, userID)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "My Orders", orders)
}

func Checkout(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	order, svcErr := services.Checkout(database.DB, userID)
	if svcErr != nil {
		return failService(c, svcErr)
	}

	go func() {
		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err == nil {
			notifications.SendEmail(user.FullName, user.Email, "Order Confirmation", fmt.Sprintf("<h1>Thank You For Your Order</h1><p>Your order %s has been placed. Total: %.2f</p>", order.OrderNumber, order.TotalAmount))
		}
	}()

	return success(c, fiber.StatusCreated, "Order created successfully", order)
}

package handlers

import (
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

func GetCart(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	cart, svcErr := services.GetUserCart(database.DB, userID)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Cart Items", cart)
}

func AddToCart(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	productID, _ := uuid.Parse(req.ProductID)

	item, svcErr := services.AddToCart(database.DB, userID, productID, req.Quantity)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusCreated, "Cart Item Added", item)
}

func UpdateCartItem(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	cartItemID, err := uuid.Parse(c.Params("cartItemId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item ID format")
	}

	var req UpdateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	item, svcErr := services.UpdateCartItem(database.DB, userID, cartItemID, req.Quantity)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Cart Item Updated", item)
}

func RemoveCartItem(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	cartItemID, err := uuid.Parse(c.Params("cartItemId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid cart item ID format")
	}

	if svcErr := services.RemoveCartItem(database.DB, userID, cartItemID); svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Cart Item Removed", nil)
}

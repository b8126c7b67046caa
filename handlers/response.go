package handlers

import (
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Every endpoint answers {success, message, data}.
func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func failService(c *fiber.Ctx, err *services.Error) error {
	return fail(c, err.Code, err.Message)
}

// userIDFromToken pulls the authenticated user's id out of the JWT the
// Protected middleware stored on the context.
func userIDFromToken(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

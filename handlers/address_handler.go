package handlers

import (
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRequest struct {
	Phone      string `json:"phone" validate:"required,max=20"`
	Street     string `json:"street" validate:"required,max=100"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

func ListAddresses(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	var addresses []models.UserAddress
	if err := database.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&addresses).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load addresses")
	}
	return success(c, fiber.StatusOK, "User Address", addresses)
}

func CreateAddress(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	var req AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var count int64
	if err := database.DB.Model(&models.UserAddress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to check addresses")
	}

	address := models.UserAddress{
		UserID:     userID,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		// The first address becomes the default automatically.
		IsDefault: req.IsDefault || count == 0,
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if txErr != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create address")
	}

	return success(c, fiber.StatusCreated, "Address created", address)
}

func UpdateAddress(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	id, err := uuid.Parse(c.Params("addressId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid address ID format")
	}

	var req AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var address models.UserAddress
	if err := database.DB.First(&address, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Address not found")
	}
	if address.UserID != userID {
		return fail(c, fiber.StatusForbidden, "You do not have permission to update this address")
	}

	address.Phone = req.Phone
	address.Street = req.Street
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault && !address.IsDefault {
			if err := tx.Model(&models.UserAddress{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			address.IsDefault = true
		}
		return tx.Save(&address).Error
	})
	if txErr != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update address")
	}

	return success(c, fiber.StatusOK, "Address updated", address)
}

func DeleteAddress(c *fiber.Ctx) error {
	userID := userIDFromToken(c)

	id, err := uuid.Parse(c.Params("addressId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid address ID format")
	}

	var address models.UserAddress
	if err := database.DB.First(&address, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Address not found")
	}
	if address.UserID != userID {
		return fail(c, fiber.StatusForbidden, "You do not have permission to delete this address")
	}

	if err := database.DB.Delete(&address).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete address")
	}

	return success(c, fiber.StatusOK, "Address deleted", nil)
}

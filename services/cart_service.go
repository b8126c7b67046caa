package services

import (
	"errors"

	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetUserCart(db *gorm.DB, userID uuid.UUID) ([]models.CartItem, *Error) {
	var cart []models.CartItem
	err := db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at asc").Find(&cart).Error
	if err != nil {
		return nil, internalError("Failed to load cart", err)
	}
	return cart, nil
}

// AddToCart upserts the (user, product) cart row. The product row is
// locked while stock is compared against the requested quantity, so two
// concurrent adds cannot both pass a stale stock check. Stock itself is
// only validated here, never decremented.
func AddToCart(db *gorm.DB, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.CartItem, *Error) {
	var item models.CartItem
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := lockForUpdate(tx).First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newError(fiber.StatusNotFound, "Product not found")
			}
			return err
		}

		if product.Stock < quantity {
			return newError(fiber.StatusBadRequest, "Insufficient product stock")
		}

		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		}

		item.Quantity = quantity
		return tx.Save(&item).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError("Failed to add item to cart", txErr)
	}

	if err := db.Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, internalError("Failed to load cart item", err)
	}
	return &item, nil
}

// UpdateCartItem changes the quantity of the caller's own cart row,
// re-validating against locked stock.
func UpdateCartItem(db *gorm.DB, userID uuid.UUID, cartItemID uuid.UUID, quantity int) (*models.CartItem, *Error) {
	var item models.CartItem
	if err := db.First(&item, "id = ?", cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(fiber.StatusNotFound, "Cart item not found")
		}
		return nil, internalError("Failed to load cart item", err)
	}
	if item.UserID != userID {
		return nil, newError(fiber.StatusForbidden, "You do not have permission to update this cart item")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
			return err
		}

		if product.Stock < quantity {
			return newError(fiber.StatusBadRequest, "Insufficient product stock")
		}

		item.Quantity = quantity
		return tx.Save(&item).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError("Failed to update cart item", txErr)
	}

	if err := db.Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, internalError("Failed to load cart item", err)
	}
	return &item, nil
}

func RemoveCartItem(db *gorm.DB, userID uuid.UUID, cartItemID uuid.UUID) *Error {
	var item models.CartItem
	if err := db.First(&item, "id = ?", cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(fiber.StatusNotFound, "Cart item not found")
		}
		return internalError("Failed to load cart item", err)
	}
	if item.UserID != userID {
		return newError(fiber.StatusForbidden, "You do not have permission to delete this cart item")
	}

	if err := db.Delete(&item).Error; err != nil {
		return internalError("Failed to remove cart item", err)
	}
	return nil
}

package services

import (
	"errors"

	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListOrders(db *gorm.DB, userID uuid.UUID) ([]models.Order, *Error) {
	var orders []models.Order
	err := db.Preload("Items").Preload("Address").
		Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error
	if err != nil {
		return nil, internalError("Failed to load orders", err)
	}
	return orders, nil
}

// Checkout converts the user's entire cart into an immutable order.
// Each product row is locked and its stock re-checked before the
// decrement, so two concurrent checkouts cannot both drain the same
// stock. Everything happens in one transaction: order, item snapshots,
// stock decrements, cart clear.
func Checkout(db *gorm.DB, userID uuid.UUID) (*models.Order, *Error) {
	var cart []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&cart).Error; err != nil {
		return nil, internalError("Failed to load cart", err)
	}
	if len(cart) == 0 {
		return nil, newError(fiber.StatusBadRequest, "Cart is empty")
	}

	var address models.UserAddress
	err := db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalError("Failed to load address", err)
		}
		return nil, newError(fiber.StatusBadRequest, "No default address")
	}

	var order models.Order
	txErr := db.Transaction(func(tx *gorm.DB) error {
		orderNumber, err := utils.GenerateUniqueOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:      userID,
			OrderNumber: orderNumber,
			AddressID:   address.ID,
			Status:      models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The total is accumulated from the locked price of each line,
		// so it always equals the sum of the item subtotals even if a
		// price changed since the cart was loaded.
		var total float64
		for _, item := range cart {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if product.Stock < item.Quantity {
				return newError(fiber.StatusBadRequest, "Insufficient product stock")
			}

			orderItem := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductPrice: product.Price,
				Quantity:     item.Quantity,
				Subtotal:     float64(item.Quantity) * product.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += orderItem.Subtotal

			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		order.TotalAmount = total
		if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError("Failed to create order", txErr)
	}

	if err := db.Preload("Items").Preload("Address").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, internalError("Failed to load order", err)
	}
	return &order, nil
}

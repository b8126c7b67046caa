package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem captures a cart line at checkout time. Name and price are
// snapshots of the product at the moment of purchase and never change.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID `gorm:"not null;index" json:"-"`
	ProductID    uuid.UUID `gorm:"not null" json:"product_id"`
	ProductName  string    `gorm:"size:255;not null" json:"product_name"`
	ProductPrice float64   `gorm:"type:numeric(10,2);not null" json:"product_price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	Subtotal     float64   `gorm:"type:numeric(10,2);not null" json:"subtotal"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

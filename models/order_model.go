package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCanceled  = "canceled"
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"not null;index" json:"-"`
	OrderNumber string    `gorm:"size:20;not null;unique" json:"order_number"`
	TotalAmount float64   `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	AddressID   uuid.UUID `gorm:"not null" json:"address_id"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Items   []OrderItem `gorm:"foreignkey:OrderID" json:"items,omitempty"`
	Address UserAddress `gorm:"foreignkey:AddressID" json:"address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

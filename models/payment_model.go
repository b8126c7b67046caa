package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSucceeded  = "succeeded"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
	PaymentStatusCanceled   = "canceled"
)

type Payment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID   uuid.UUID `gorm:"not null;unique" json:"appointment_id"`
	StripeSessionID *string   `gorm:"size:255" json:"stripe_session_id"`
	Amount          float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency        string    `gorm:"size:3;not null;default:'usd'" json:"currency"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCanceled  = "canceled"
)

// Appointment links a patient to a booked time slot. A patient may hold
// at most one appointment in {pending, confirmed} at a time.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PatientID uuid.UUID `gorm:"not null;index" json:"patient_id"`
	SlotID    uuid.UUID `gorm:"not null;index" json:"slot_id"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes     *string   `gorm:"type:text" json:"notes"`

	Patient User     `gorm:"foreignkey:PatientID" json:"patient,omitempty"`
	Slot    TimeSlot `gorm:"foreignkey:SlotID" json:"slot,omitempty"`
	Payment *Payment `gorm:"foreignkey:AppointmentID" json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

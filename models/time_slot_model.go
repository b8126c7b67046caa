package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
)

type TimeSlot struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AvailabilityID uuid.UUID `gorm:"not null;index" json:"availability_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	StartTime      string    `gorm:"size:5;not null" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null" json:"end_time"`
	Status         string    `gorm:"size:20;not null;default:'available'" json:"status"`

	Availability DoctorAvailability `gorm:"foreignkey:AvailabilityID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *TimeSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorAvailability is an admin-defined window of time from which
// bookable time slots are generated. Start and end are times of day
// in "15:04" form, the slot duration is in minutes.
type DoctorAvailability struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date         time.Time `gorm:"not null" json:"date"`
	StartTime    string    `gorm:"size:5;not null" json:"start_time"`
	EndTime      string    `gorm:"size:5;not null" json:"end_time"`
	SlotDuration int       `gorm:"not null" json:"slot_duration"`

	TimeSlots []TimeSlot `gorm:"foreignkey:AvailabilityID" json:"time_slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *DoctorAvailability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

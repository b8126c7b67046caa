package services

import (
	"errors"
	"time"

	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const timeOfDayLayout = "15:04"

type AvailabilityInput struct {
	Date         time.Time
	StartTime    string
	EndTime      string
	SlotDuration int
}

func (in AvailabilityInput) window() (start, end time.Time, err error) {
	start, err = time.Parse(timeOfDayLayout, in.StartTime)
	if err != nil {
		return
	}
	end, err = time.Parse(timeOfDayLayout, in.EndTime)
	return
}

// orderedSlots keeps preloaded slots in chronological order.
func orderedSlots(db *gorm.DB) *gorm.DB {
	return db.Order("date asc, start_time asc")
}

func ListAvailabilities(db *gorm.DB) ([]models.DoctorAvailability, *Error) {
	var availabilities []models.DoctorAvailability
	err := db.Preload("TimeSlots", orderedSlots).Order("created_at desc").Find(&availabilities).Error
	if err != nil {
		return nil, internalError("Failed to load availabilities", err)
	}
	return availabilities, nil
}

func GetAvailability(db *gorm.DB, id uuid.UUID) (*models.DoctorAvailability, *Error) {
	var availability models.DoctorAvailability
	err := db.Preload("TimeSlots", orderedSlots).First(&availability, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(fiber.StatusNotFound, "Availability not found")
		}
		return nil, internalError("Failed to load availability", err)
	}
	return &availability, nil
}

// CreateAvailability stores the window and generates its time slots in
// one transaction.
func CreateAvailability(db *gorm.DB, in AvailabilityInput) (*models.DoctorAvailability, *Error) {
	start, end, err := in.window()
	if err != nil {
		return nil, newError(fiber.StatusUnprocessableEntity, "Invalid time format, expected HH:MM")
	}
	if !start.Before(end) {
		return nil, newError(fiber.StatusUnprocessableEntity, "Start time must be before end time")
	}
	if in.SlotDuration <= 0 {
		return nil, newError(fiber.StatusUnprocessableEntity, "Slot duration must be a positive number of minutes")
	}

	availability := models.DoctorAvailability{
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		SlotDuration: in.SlotDuration,
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&availability).Error; err != nil {
			return err
		}
		return generateTimeSlots(tx, &availability, nil)
	})
	if txErr != nil {
		return nil, internalError("Failed to create availability", txErr)
	}

	return GetAvailability(db, availability.ID)
}

// UpdateAvailability rewrites the window and regenerates its slots.
// Booked slots are never destroyed: only slots still available are
// deleted, and no new slot is generated over a kept booked slot.
func UpdateAvailability(db *gorm.DB, id uuid.UUID, in AvailabilityInput) (*models.DoctorAvailability, *Error) {
	start, end, err := in.window()
	if err != nil {
		return nil, newError(fiber.StatusUnprocessableEntity, "Invalid time format, expected HH:MM")
	}
	if !start.Before(end) {
		return nil, newError(fiber.StatusUnprocessableEntity, "Start time must be before end time")
	}
	if in.SlotDuration <= 0 {
		return nil, newError(fiber.StatusUnprocessableEntity, "Slot duration must be a positive number of minutes")
	}

	var availability models.DoctorAvailability
	if err := db.First(&availability, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(fiber.StatusNotFound, "Availability not found")
		}
		return nil, internalError("Failed to load availability", err)
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		availability.Date = in.Date
		availability.StartTime = in.StartTime
		availability.EndTime = in.EndTime
		availability.SlotDuration = in.SlotDuration
		if err := tx.Save(&availability).Error; err != nil {
			return err
		}

		var booked []models.TimeSlot
		if err := tx.Where("availability_id = ? AND status = ?", availability.ID, models.SlotStatusBooked).
			Find(&booked).Error; err != nil {
			return err
		}

		if err := tx.Where("availability_id = ? AND status = ?", availability.ID, models.SlotStatusAvailable).
			Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}

		return generateTimeSlots(tx, &availability, booked)
	})
	if txErr != nil {
		return nil, internalError("Failed to update availability", txErr)
	}

	return GetAvailability(db, availability.ID)
}

// DeleteAvailability removes the window and its slots. Rejected while
// any of its slots is booked.
func DeleteAvailability(db *gorm.DB, id uuid.UUID) *Error {
	var availability models.DoctorAvailability
	if err := db.First(&availability, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(fiber.StatusNotFound, "Availability not found")
		}
		return internalError("Failed to load availability", err)
	}

	var bookedCount int64
	if err := db.Model(&models.TimeSlot{}).
		Where("availability_id = ? AND status = ?", id, models.SlotStatusBooked).
		Count(&bookedCount).Error; err != nil {
		return internalError("Failed to check booked slots", err)
	}
	if bookedCount > 0 {
		return newError(fiber.StatusConflict, "Availability has booked slots and cannot be deleted")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("availability_id = ?", id).Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&availability).Error
	})
	if txErr != nil {
		return internalError("Failed to delete availability", txErr)
	}
	return nil
}

// generateTimeSlots walks the window emitting [cursor, cursor+duration)
// slots while the full duration still fits. A trailing remainder shorter
// than the duration is dropped. Candidates overlapping a kept booked
// slot on the same date are skipped.
func generateTimeSlots(tx *gorm.DB, availability *models.DoctorAvailability, keepBooked []models.TimeSlot) error {
	start, err := time.Parse(timeOfDayLayout, availability.StartTime)
	if err != nil {
		return err
	}
	end, err := time.Parse(timeOfDayLayout, availability.EndTime)
	if err != nil {
		return err
	}
	duration := time.Duration(availability.SlotDuration) * time.Minute

	for cursor := start; !cursor.Add(duration).After(end); cursor = cursor.Add(duration) {
		slotStart := cursor.Format(timeOfDayLayout)
		slotEnd := cursor.Add(duration).Format(timeOfDayLayout)

		if overlapsBooked(availability.Date, slotStart, slotEnd, keepBooked) {
			continue
		}

		slot := models.TimeSlot{
			AvailabilityID: availability.ID,
			Date:           availability.Date,
			StartTime:      slotStart,
			EndTime:        slotEnd,
			Status:         models.SlotStatusAvailable,
		}
		if err := tx.Create(&slot).Error; err != nil {
			return err
		}
	}
	return nil
}

func overlapsBooked(date time.Time, start, end string, booked []models.TimeSlot) bool {
	for _, b := range booked {
		if !sameDay(date, b.Date) {
			continue
		}
		// "HH:MM" strings compare correctly lexicographically.
		if start < b.EndTime && b.StartTime < end {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

package services

import (
	"errors"
	"log"
	"time"

	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookAppointment reserves a slot for a patient. The slot row is locked
// for the duration of the read-modify-write so concurrent bookings of
// the same slot serialize on the database; exactly one wins.
//
// The appointment is created pending with a pending payment row; the
// Stripe webhook flips both to confirmed/succeeded once the patient
// pays.
func BookAppointment(db *gorm.DB, patientID uuid.UUID, slotID uuid.UUID, notes *string, fee float64, currency string) (*models.Appointment, *Error) {
	var activeCount int64
	err := db.Model(&models.Appointment{}).
		Where("patient_id = ? AND status IN ?", patientID, []string{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}).
		Count(&activeCount).Error
	if err != nil {
		return nil, internalError("Failed to check existing appointments", err)
	}
	if activeCount > 0 {
		return nil, newError(fiber.StatusConflict, "You already have an active appointment")
	}

	var appointment models.Appointment
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var slot models.TimeSlot
		err := lockForUpdate(tx).First(&slot, "id = ?", slotID).Error
		if err != nil || slot.Status != models.SlotStatusAvailable {
			return newError(fiber.StatusUnprocessableEntity, "Slot not available or not found")
		}

		appointment = models.Appointment{
			PatientID: patientID,
			SlotID:    slot.ID,
			Status:    models.AppointmentStatusPending,
			Notes:     notes,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		payment := models.Payment{
			AppointmentID: appointment.ID,
			Amount:        fee,
			Currency:      currency,
			Status:        models.PaymentStatusPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		slot.Status = models.SlotStatusBooked
		return tx.Save(&slot).Error
	})
	if txErr != nil {
		var svcErr *Error
		if errors.As(txErr, &svcErr) {
			return nil, svcErr
		}
		return nil, internalError("Failed to book appointment", txErr)
	}

	if err := db.Preload("Slot").Preload("Payment").First(&appointment, "id = ?", appointment.ID).Error; err != nil {
		return nil, internalError("Failed to load appointment", err)
	}
	return &appointment, nil
}

// CancelAppointment removes a patient's own appointment and frees its
// slot in one transaction.
func CancelAppointment(db *gorm.DB, patientID uuid.UUID, appointmentID uuid.UUID) (*models.Appointment, *Error) {
	var appointment models.Appointment
	err := db.Preload("Patient").Preload("Slot").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(fiber.StatusNotFound, "Appointment not found")
		}
		return nil, internalError("Failed to load appointment", err)
	}

	if appointment.PatientID != patientID {
		return nil, newError(fiber.StatusForbidden, "This is not your appointment")
	}

	if svcErr := cancelAndFreeSlot(db, &appointment); svcErr != nil {
		return nil, svcErr
	}
	return &appointment, nil
}

// CancelAppointmentForAdmin cancels any appointment and frees its slot.
func CancelAppointmentForAdmin(db *gorm.DB, appointmentID uuid.UUID) (*models.Appointment, *Error) {
	var appointment models.Appointment
	err := db.Preload("Patient").Preload("Slot").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(fiber.StatusNotFound, "Appointment not found")
		}
		return nil, internalError("Failed to load appointment", err)
	}

	if svcErr := cancelAndFreeSlot(db, &appointment); svcErr != nil {
		return nil, svcErr
	}
	return &appointment, nil
}

func cancelAndFreeSlot(db *gorm.DB, appointment *models.Appointment) *Error {
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Payment{}, "appointment_id = ?", appointment.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Appointment{}, "id = ?", appointment.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.TimeSlot{}).
			Where("id = ?", appointment.SlotID).
			Update("status", models.SlotStatusAvailable).Error
	})
	if txErr != nil {
		return internalError("Failed to cancel appointment", txErr)
	}
	return nil
}

// ConfirmAppointmentPayment is the webhook path: it marks the
// appointment confirmed and its payment succeeded, recording the Stripe
// session id. Replays are harmless: once the payment has succeeded the
// call reports confirmed=false and writes nothing.
func ConfirmAppointmentPayment(db *gorm.DB, appointmentID uuid.UUID, sessionID string) (*models.Appointment, bool, *Error) {
	var appointment models.Appointment
	err := db.Preload("Patient").First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, newError(fiber.StatusNotFound, "Appointment not found")
		}
		return nil, false, internalError("Failed to load appointment", err)
	}

	var payment models.Payment
	if err := db.First(&payment, "appointment_id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, newError(fiber.StatusNotFound, "Payment record not found")
		}
		return nil, false, internalError("Failed to load payment", err)
	}

	if payment.Status == models.PaymentStatusSucceeded {
		return &appointment, false, nil
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		appointment.Status = models.AppointmentStatusConfirmed
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		payment.Status = models.PaymentStatusSucceeded
		payment.StripeSessionID = &sessionID
		return tx.Save(&payment).Error
	})
	if txErr != nil {
		return nil, false, internalError("Failed to confirm payment", txErr)
	}

	return &appointment, true, nil
}

// ListAppointmentsForAdmin returns every appointment with its patient.
func ListAppointmentsForAdmin(db *gorm.DB) ([]models.Appointment, *Error) {
	var appointments []models.Appointment
	err := db.Preload("Patient").Preload("Slot").Preload("Payment").
		Order("created_at desc").Find(&appointments).Error
	if err != nil {
		return nil, internalError("Failed to load appointments", err)
	}
	return appointments, nil
}

// ListPatientAppointments returns the caller's appointments with slots.
func ListPatientAppointments(db *gorm.DB, patientID uuid.UUID) ([]models.Appointment, *Error) {
	var appointments []models.Appointment
	err := db.Preload("Slot").Preload("Payment").
		Where("patient_id = ?", patientID).
		Order("created_at desc").Find(&appointments).Error
	if err != nil {
		return nil, internalError("Failed to load appointments", err)
	}
	return appointments, nil
}

// ExpireStalePendingAppointments cancels pending appointments older than
// ttl, freeing their slots and marking their payments canceled. Returns
// the canceled appointments so the caller can notify patients.
func ExpireStalePendingAppointments(db *gorm.DB, ttl time.Duration) ([]models.Appointment, error) {
	cutoff := time.Now().Add(-ttl)

	var stale []models.Appointment
	err := db.Preload("Patient").
		Where("status = ? AND created_at < ?", models.AppointmentStatusPending, cutoff).
		Find(&stale).Error
	if err != nil {
		return nil, err
	}

	var canceled []models.Appointment
	for i := range stale {
		appointment := stale[i]
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Appointment{}).
				Where("id = ?", appointment.ID).
				Update("status", models.AppointmentStatusCanceled).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.TimeSlot{}).
				Where("id = ?", appointment.SlotID).
				Update("status", models.SlotStatusAvailable).Error; err != nil {
				return err
			}
			return tx.Model(&models.Payment{}).
				Where("appointment_id = ? AND status = ?", appointment.ID, models.PaymentStatusPending).
				Update("status", models.PaymentStatusCanceled).Error
		})
		if txErr != nil {
			log.Printf("Failed to expire appointment %s: %v", appointment.ID, txErr)
			continue
		}
		canceled = append(canceled, appointment)
	}
	return canceled, nil
}

package services

import (
	"testing"
	"time"

	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointmentReservesSlot(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "booker@example.com")

	notes := "first visit"
	appointment, svcErr := BookAppointment(db, patient.ID, availability.TimeSlots[0].ID, &notes, 50, "usd")
	require.Nil(t, svcErr)

	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, patient.ID, appointment.PatientID)
	require.NotNil(t, appointment.Notes)
	assert.Equal(t, "first visit", *appointment.Notes)

	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "id = ?", availability.TimeSlots[0].ID).Error)
	assert.Equal(t, models.SlotStatusBooked, slot.Status)

	require.NotNil(t, appointment.Payment)
	assert.Equal(t, models.PaymentStatusPending, appointment.Payment.Status)
	assert.Equal(t, 50.0, appointment.Payment.Amount)
}

func TestBookAppointmentRejectsSecondActiveAppointment(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "greedy@example.com")

	_, svcErr := BookAppointment(db, patient.ID, availability.TimeSlots[0].ID, nil, 50, "usd")
	require.Nil(t, svcErr)

	_, svcErr = BookAppointment(db, patient.ID, availability.TimeSlots[1].ID, nil, 50, "usd")
	require.NotNil(t, svcErr)
	assert.Equal(t, fiber.StatusConflict, svcErr.Code)
	assert.Equal(t, "You already have an active appointment", svcErr.Message)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("patient_id = ?", patient.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookAppointmentRejectsBookedSlot(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	first := createTestPatient(t, db, "first@example.com")
	second := createTestPatient(t, db, "second@example.com")

	slotID := availability.TimeSlots[0].ID
	_, svcErr := BookAppointment(db, first.ID, slotID, nil, 50, "usd")
	require.Nil(t, svcErr)

	_, svcErr = BookAppointment(db, second.ID, slotID, nil, 50, "usd")
	require.NotNil(t, svcErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, svcErr.Code)
	assert.Equal(t, "Slot not available or not found", svcErr.Message)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("slot_id = ?", slotID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookAppointmentRejectsUnknownSlot(t *testing.T) {
	db := setupTestDB(t)

	patient := createTestPatient(t, db, "lost@example.com")

	_, svcErr := BookAppointment(db, patient.ID, uuid.New(), nil, 50, "usd")
	require.NotNil(t, svcErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, svcErr.Code)
}

func TestCancelAppointmentFreesSlot(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "canceler@example.com")

	slotID := availability.TimeSlots[0].ID
	appointment, svcErr := BookAppointment(db, patient.ID, slotID, nil, 50, "usd")
	require.Nil(t, svcErr)

	_, svcErr = CancelAppointment(db, patient.ID, appointment.ID)
	require.Nil(t, svcErr)

	// The slot is visible as available immediately after the cancel.
	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "id = ?", slotID).Error)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Where("id = ?", appointment.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The patient can book again.
	_, svcErr = BookAppointment(db, patient.ID, slotID, nil, 50, "usd")
	require.Nil(t, svcErr)
}

func TestCancelAppointmentRejectsNonOwner(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	owner := createTestPatient(t, db, "owner@example.com")
	intruder := createTestPatient(t, db, "intruder@example.com")

	appointment, svcErr := BookAppointment(db, owner.ID, availability.TimeSlots[0].ID, nil, 50, "usd")
	require.Nil(t, svcErr)

	_, svcErr = CancelAppointment(db, intruder.ID, appointment.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, fiber.StatusForbidden, svcErr.Code)

	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "id = ?", appointment.SlotID).Error)
	assert.Equal(t, models.SlotStatusBooked, slot.Status)
}

func TestCancelAppointmentForAdmin(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "admincancel@example.com")

	appointment, svcErr := BookAppointment(db, patient.ID, availability.TimeSlots[0].ID, nil, 50, "usd")
	require.Nil(t, svcErr)

	canceled, svcErr := CancelAppointmentForAdmin(db, appointment.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, patient.Email, canceled.Patient.Email)

	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "id = ?", appointment.SlotID).Error)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)
}

func TestConfirmAppointmentPaymentIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "payer@example.com")

	appointment, svcErr := BookAppointment(db, patient.ID, availability.TimeSlots[0].ID, nil, 50, "usd")
	require.Nil(t, svcErr)

	confirmed, changed, svcErr := ConfirmAppointmentPayment(db, appointment.ID, "cs_test_123")
	require.Nil(t, svcErr)
	assert.True(t, changed)
	assert.Equal(t, models.AppointmentStatusConfirmed, confirmed.Status)

	// Replaying the same event changes nothing.
	_, changed, svcErr = ConfirmAppointmentPayment(db, appointment.ID, "cs_test_123")
	require.Nil(t, svcErr)
	assert.False(t, changed)

	var payments []models.Payment
	require.NoError(t, db.Where("appointment_id = ?", appointment.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentStatusSucceeded, payments[0].Status)
	require.NotNil(t, payments[0].StripeSessionID)
	assert.Equal(t, "cs_test_123", *payments[0].StripeSessionID)
}

func TestExpireStalePendingAppointments(t *testing.T) {
	db := setupTestDB(t)

	availability := createTestAvailability(t, db, "09:00", "10:00", 20)
	patient := createTestPatient(t, db, "stale@example.com")

	slotID := availability.TimeSlots[0].ID
	appointment, svcErr := BookAppointment(db, patient.ID, slotID, nil, 50, "usd")
	require.Nil(t, svcErr)

	// Age the appointment past the TTL.
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("id = ?", appointment.ID).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	canceled, err := ExpireStalePendingAppointments(db, 30*time.Minute)
	require.NoError(t, err)
	require.Len(t, canceled, 1)

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentStatusCanceled, reloaded.Status)

	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "id = ?", slotID).Error)
	assert.Equal(t, models.SlotStatusAvailable, slot.Status)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "appointment_id = ?", appointment.ID).Error)
	assert.Equal(t, models.PaymentStatusCanceled, payment.Status)

	// A confirmed appointment is never expired.
	fresh, svcErr := BookAppointment(db, patient.ID, slotID, nil, 50, "usd")
	require.Nil(t, svcErr)
	_, _, svcErr = ConfirmAppointmentPayment(db, fresh.ID, "cs_live")
	require.Nil(t, svcErr)
	require.NoError(t, db.Model(&models.Appointment{}).
		Where("id = ?", fresh.ID).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	canceled, err = ExpireStalePendingAppointments(db, 30*time.Minute)
	require.NoError(t, err)
	assert.Empty(t, canceled)
}

package handlers

import (
	"log"
	"strconv"

	config "github.com/fathallah7/health-clinic/configs"
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/notifications"
	"github.com/fathallah7/health-clinic/payments"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	SlotID string  `json:"slot_id" validate:"required,uuid"`
	Notes  *string `json:"notes,omitempty"`
}

// CreateAppointment books a slot for the caller. The appointment starts
// pending and a Stripe Checkout URL is returned; the webhook confirms
// it once the fee is paid.
func CreateAppointment(c *fiber.Ctx) error {
	patientID := userIDFromToken(c)

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	slotID, _ := uuid.Parse(req.SlotID)

	fee, err := strconv.ParseFloat(config.ConfigOr("CONSULTATION_FEE", "50"), 64)
	if err != nil {
		fee = 50
	}
	currency := config.ConfigOr("PAYMENT_CURRENCY", "usd")

	appointment, svcErr := services.BookAppointment(database.DB, patientID, slotID, req.Notes, fee, currency)
	if svcErr != nil {
		return failService(c, svcErr)
	}

	session, err := payments.CreateCheckoutSession(appointment.ID, fee, currency)
	if err != nil {
		log.Printf("🔥 CRITICAL: CreateCheckoutSession failed for appointment %s: %v", appointment.ID, err)
		return fail(c, fiber.StatusInternalServerError, "Payment could not be initiated, please try again.")
	}

	if err := database.DB.Model(&models.Payment{}).
		Where("appointment_id = ?", appointment.ID).
		Update("stripe_session_id", session.ID).Error; err != nil {
		log.Printf("🔥 Failed to save stripe session id: %v", err)
	}

	go func() {
		var patient models.User
		if err := database.DB.First(&patient, "id = ?", patientID).Error; err == nil {
			notifications.SendEmail(patient.FullName, patient.Email, "Complete Your Appointment Payment", "<h1>Almost There</h1><p>Your appointment is reserved. Complete the payment to confirm it, the slot is held for a limited time.</p>")
		}
	}()

	return success(c, fiber.StatusCreated, "Appointment Created", fiber.Map{
		"appointment":  appointment,
		"checkout_url": session.URL,
	})
}

// CancelAppointment lets a patient cancel their own appointment, which
// frees the slot immediately.
func CancelAppointment(c *fiber.Ctx) error {
	patientID := userIDFromToken(c)

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid appointment ID format")
	}

	appointment, svcErr := services.CancelAppointment(database.DB, patientID, appointmentID)
	if svcErr != nil {
		return failService(c, svcErr)
	}

	go notifications.SendEmail(appointment.Patient.FullName, appointment.Patient.Email, "Appointment Canceled", "<h1>Appointment Canceled</h1><p>Your appointment has been canceled and the time slot released.</p>")

	return success(c, fiber.StatusOK, "Appointment Cancelled", nil)
}

func AdminListAppointments(c *fiber.Ctx) error {
	appointments, svcErr := services.ListAppointmentsForAdmin(database.DB)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Appointments List", appointments)
}

func AdminCancelAppointment(c *fiber.Ctx) error {
	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid appointment ID format")
	}

	appointment, svcErr := services.CancelAppointmentForAdmin(database.DB, appointmentID)
	if svcErr != nil {
		return failService(c, svcErr)
	}

	go notifications.SendEmail(appointment.Patient.FullName, appointment.Patient.Email, "Appointment Canceled by Clinic", "<h1>Appointment Canceled</h1><p>Your appointment was canceled by the clinic. Please book another time slot or contact us for assistance.</p>")

	return success(c, fiber.StatusOK, "Appointment deleted successfully", nil)
}

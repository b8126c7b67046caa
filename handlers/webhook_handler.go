package handlers

import (
	"encoding/json"
	"log"
	"time"

	config "github.com/fathallah7/health-clinic/configs"
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/notifications"
	"github.com/fathallah7/health-clinic/payments"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HandleStripeWebhook processes asynchronous payment notifications.
// The endpoint is unauthenticated by design: the request proves itself
// with the Stripe-Signature header instead of a session. Signature or
// payload failures answer 400 without touching any state, and replays
// of an already-processed event are acknowledged without side effects.
func HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")
	secret := config.Config("STRIPE_WEBHOOK_SECRET")

	if err := payments.VerifyWebhookSignature(payload, signature, secret, time.Now()); err != nil {
		log.Printf("Stripe webhook signature rejected: %v", err)
		return fail(c, fiber.StatusBadRequest, "Invalid signature")
	}

	var event payments.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid payload")
	}

	if event.Type != "checkout.session.completed" {
		return success(c, fiber.StatusOK, "Event ignored", nil)
	}

	appointmentID, err := uuid.Parse(event.Data.Object.Metadata.AppointmentID)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid payload")
	}

	appointment, confirmed, svcErr := services.ConfirmAppointmentPayment(database.DB, appointmentID, event.Data.Object.ID)
	if svcErr != nil {
		log.Printf("🔥 CRITICAL: Error processing webhook for appointment %s: %v", appointmentID, svcErr)
		return failService(c, svcErr)
	}

	if !confirmed {
		return success(c, fiber.StatusOK, "Webhook already processed", nil)
	}

	log.Printf("Appointment %s confirmed via webhook", appointmentID)
	go notifications.SendEmail(appointment.Patient.FullName, appointment.Patient.Email, "Your Appointment is Confirmed!", "<h1>Appointment Confirmed</h1><p>Your payment was successful and your appointment is confirmed. See you at the clinic.</p>")

	return success(c, fiber.StatusOK, "Webhook processed successfully", nil)
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/payments"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_handler_test"

func setupWebhookTest(t *testing.T) (*fiber.App, models.Appointment) {
	t.Helper()
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DoctorAvailability{},
		&models.TimeSlot{},
		&models.Appointment{},
		&models.Payment{},
	))
	database.DB = db

	patient := models.User{FullName: "Webhook Patient", Email: "webhook@example.com", Password: "hashed", Role: "patient"}
	require.NoError(t, db.Create(&patient).Error)

	availability, svcErr := services.CreateAvailability(db, services.AvailabilityInput{
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "10:00",
		SlotDuration: 30,
	})
	require.Nil(t, svcErr)

	appointment, svcErr := services.BookAppointment(db, patient.ID, availability.TimeSlots[0].ID, nil, 50, "usd")
	require.Nil(t, svcErr)

	app := fiber.New()
	app.Post("/api/v1/stripe/webhook", HandleStripeWebhook)
	return app, *appointment
}

func checkoutCompletedEvent(t *testing.T, appointmentID, sessionID string) []byte {
	t.Helper()

	payload, err := json.Marshal(fiber.Map{
		"type": "checkout.session.completed",
		"data": fiber.Map{
			"object": fiber.Map{
				"id": sessionID,
				"metadata": fiber.Map{
					"appointment_id": appointmentID,
				},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func postWebhook(t *testing.T, app *fiber.App, payload []byte, signature string) int {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/stripe/webhook", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestWebhookConfirmsAppointment(t *testing.T) {
	app, appointment := setupWebhookTest(t)

	payload := checkoutCompletedEvent(t, appointment.ID.String(), "cs_test_abc")
	signature := payments.SignWebhookPayload(payload, testWebhookSecret, time.Now())

	status := postWebhook(t, app, payload, signature)
	assert.Equal(t, fiber.StatusOK, status)

	var reloaded models.Appointment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentStatusConfirmed, reloaded.Status)

	var payment models.Payment
	require.NoError(t, database.DB.First(&payment, "appointment_id = ?", appointment.ID).Error)
	assert.Equal(t, models.PaymentStatusSucceeded, payment.Status)
	require.NotNil(t, payment.StripeSessionID)
	assert.Equal(t, "cs_test_abc", *payment.StripeSessionID)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	app, appointment := setupWebhookTest(t)

	payload := checkoutCompletedEvent(t, appointment.ID.String(), "cs_test_replay")
	signature := payments.SignWebhookPayload(payload, testWebhookSecret, time.Now())

	assert.Equal(t, fiber.StatusOK, postWebhook(t, app, payload, signature))
	assert.Equal(t, fiber.StatusOK, postWebhook(t, app, payload, signature))

	var count int64
	require.NoError(t, database.DB.Model(&models.Payment{}).
		Where("appointment_id = ?", appointment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var reloaded models.Appointment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentStatusConfirmed, reloaded.Status)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app, appointment := setupWebhookTest(t)

	payload := checkoutCompletedEvent(t, appointment.ID.String(), "cs_test_bad")
	signature := payments.SignWebhookPayload(payload, "whsec_wrong", time.Now())

	assert.Equal(t, fiber.StatusBadRequest, postWebhook(t, app, payload, signature))
	assert.Equal(t, fiber.StatusBadRequest, postWebhook(t, app, payload, ""))

	// No state change.
	var reloaded models.Appointment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentStatusPending, reloaded.Status)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	app, appointment := setupWebhookTest(t)

	payload, err := json.Marshal(fiber.Map{"type": "invoice.paid", "data": fiber.Map{"object": fiber.Map{"id": "in_1"}}})
	require.NoError(t, err)
	signature := payments.SignWebhookPayload(payload, testWebhookSecret, time.Now())

	assert.Equal(t, fiber.StatusOK, postWebhook(t, app, payload, signature))

	var reloaded models.Appointment
	require.NoError(t, database.DB.First(&reloaded, "id = ?", appointment.ID).Error)
	assert.Equal(t, models.AppointmentStatusPending, reloaded.Status)
}

func TestWebhookRejectsMalformedMetadata(t *testing.T) {
	app, _ := setupWebhookTest(t)

	payload := checkoutCompletedEvent(t, "not-a-uuid", "cs_test_junk")
	signature := payments.SignWebhookPayload(payload, testWebhookSecret, time.Now())

	assert.Equal(t, fiber.StatusBadRequest, postWebhook(t, app, payload, signature))
}

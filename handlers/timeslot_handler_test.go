package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTimeSlotTest(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DoctorAvailability{}, &models.TimeSlot{}))
	database.DB = db

	app := fiber.New()
	app.Get("/api/v1/time-slots", ListBookableTimeSlots)
	return app
}

func createSlot(t *testing.T, date time.Time, start, end, status string) models.TimeSlot {
	t.Helper()

	availability := models.DoctorAvailability{
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: 30,
	}
	require.NoError(t, database.DB.Create(&availability).Error)

	slot := models.TimeSlot{
		AvailabilityID: availability.ID,
		Date:           date,
		StartTime:      start,
		EndTime:        end,
		Status:         status,
	}
	require.NoError(t, database.DB.Create(&slot).Error)
	return slot
}

func TestListBookableTimeSlotsFiltersPastAndBooked(t *testing.T) {
	app := setupTimeSlotTest(t)

	// Day boundaries in the server's own location, not UTC.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	todaySlot := createSlot(t, today, "09:00", "09:30", models.SlotStatusAvailable)
	createSlot(t, today.AddDate(0, 0, -1), "09:00", "09:30", models.SlotStatusAvailable)
	createSlot(t, today.AddDate(0, 0, 1), "10:00", "10:30", models.SlotStatusBooked)
	tomorrowSlot := createSlot(t, today.AddDate(0, 0, 1), "11:00", "11:30", models.SlotStatusAvailable)

	req := httptest.NewRequest("GET", "/api/v1/time-slots", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    []models.TimeSlot `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)

	require.Len(t, body.Data, 2)
	assert.Equal(t, todaySlot.ID, body.Data[0].ID)
	assert.Equal(t, tomorrowSlot.ID, body.Data[1].ID)
}

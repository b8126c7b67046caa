package handlers

import (
	"time"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TimeSlotRequest struct {
	AvailabilityID string `json:"availability_id" validate:"required,uuid"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string `json:"end_time" validate:"required,datetime=15:04"`
}

type TimeSlotUpdateRequest struct {
	Date      string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"end_time,omitempty" validate:"omitempty,datetime=15:04"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=available booked"`
}

// ListBookableTimeSlots is the public listing of slots a patient can
// still book.
func ListBookableTimeSlots(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var slots []models.TimeSlot
	err := database.DB.
		Where("status = ? AND date >= ?", models.SlotStatusAvailable, today).
		Order("date asc, start_time asc").
		Find(&slots).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load time slots")
	}

	return success(c, fiber.StatusOK, "Time Slots", slots)
}

// ListMyTimeSlots returns the caller's appointments with their slots.
func ListMyTimeSlots(c *fiber.Ctx) error {
	patientID := userIDFromToken(c)

	appointments, svcErr := services.ListPatientAppointments(database.DB, patientID)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "User Time Slots", appointments)
}

func AdminListTimeSlots(c *fiber.Ctx) error {
	var slots []models.TimeSlot
	if err := database.DB.Order("date asc, start_time asc").Find(&slots).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to load time slots")
	}
	return success(c, fiber.StatusOK, "Time Slots List", slots)
}

func AdminCreateTimeSlot(c *fiber.Ctx) error {
	var req TimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if req.StartTime >= req.EndTime {
		return fail(c, fiber.StatusUnprocessableEntity, "Start time must be before end time")
	}

	availabilityID, _ := uuid.Parse(req.AvailabilityID)
	var availability models.DoctorAvailability
	if err := database.DB.First(&availability, "id = ?", availabilityID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Availability not found")
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	slot := models.TimeSlot{
		AvailabilityID: availabilityID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Status:         models.SlotStatusAvailable,
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to create time slot")
	}

	return success(c, fiber.StatusCreated, "Time Slot Created", slot)
}

func AdminUpdateTimeSlot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid time slot ID format")
	}

	var req TimeSlotUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var slot models.TimeSlot
	if err := database.DB.First(&slot, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Time slot not found")
	}

	if req.Date != "" {
		slot.Date, _ = time.Parse("2006-01-02", req.Date)
	}
	if req.StartTime != "" {
		slot.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		slot.EndTime = req.EndTime
	}
	if req.Status != "" {
		slot.Status = req.Status
	}
	if slot.StartTime >= slot.EndTime {
		return fail(c, fiber.StatusUnprocessableEntity, "Start time must be before end time")
	}

	if err := database.DB.Save(&slot).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to update time slot")
	}

	return success(c, fiber.StatusOK, "Time Slot Updated", slot)
}

func AdminDeleteTimeSlot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid time slot ID format")
	}

	var slot models.TimeSlot
	if err := database.DB.First(&slot, "id = ?", id).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Time slot not found")
	}
	if slot.Status == models.SlotStatusBooked {
		return fail(c, fiber.StatusConflict, "Time slot is booked and cannot be deleted")
	}

	if err := database.DB.Delete(&slot).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Failed to delete time slot")
	}

	return success(c, fiber.StatusOK, "Time Slot Deleted", nil)
}

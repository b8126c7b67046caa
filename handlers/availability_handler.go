package handlers

import (
	"time"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AvailabilityRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string `json:"end_time" validate:"required,datetime=15:04"`
	SlotDuration int    `json:"slot_duration" validate:"required,min=5,max=240"`
}

func (r AvailabilityRequest) toInput() services.AvailabilityInput {
	date, _ := time.Parse("2006-01-02", r.Date)
	return services.AvailabilityInput{
		Date:         date,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		SlotDuration: r.SlotDuration,
	}
}

func ListAvailabilities(c *fiber.Ctx) error {
	availabilities, svcErr := services.ListAvailabilities(database.DB)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Availability List", availabilities)
}

func GetAvailability(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid availability ID format")
	}

	availability, svcErr := services.GetAvailability(database.DB, id)
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Availability", availability)
}

func CreateAvailability(c *fiber.Ctx) error {
	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	availability, svcErr := services.CreateAvailability(database.DB, req.toInput())
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusCreated, "Availability Created", availability)
}

func UpdateAvailability(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid availability ID format")
	}

	var req AvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	availability, svcErr := services.UpdateAvailability(database.DB, id, req.toInput())
	if svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Availability Updated", availability)
}

func DeleteAvailability(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("availabilityId"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid availability ID format")
	}

	if svcErr := services.DeleteAvailability(database.DB, id); svcErr != nil {
		return failService(c, svcErr)
	}
	return success(c, fiber.StatusOK, "Availability Deleted", nil)
}

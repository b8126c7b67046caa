package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/fathallah7/health-clinic/middleware"
	"github.com/gofiber/fiber/v2"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	user := api.Group("/user", middleware.Protected())
	user.Get("/time-slots", handlers.ListMyTimeSlots)

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Post("", handlers.CreateAppointment)
	appointments.Delete("/:appointmentId", handlers.CancelAppointment)
}

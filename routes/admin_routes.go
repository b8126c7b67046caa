package routes

import (
	"github.com/fathallah7/health-clinic/handlers"
	"github.com/fathallah7/health-clinic/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	availabilities := admin.Group("/availabilities")
	availabilities.Get("", handlers.ListAvailabilities)
	availabilities.Get("/:availabilityId", handlers.GetAvailability)
	availabilities.Post("", handlers.CreateAvailability)
	availabilities.Put("/:availabilityId", handlers.UpdateAvailability)
	availabilities.Delete("/:availabilityId", handlers.DeleteAvailability)

	timeSlots := admin.Group("/time-slots")
	timeSlots.Get("", handlers.AdminListTimeSlots)
	timeSlots.Post("", handlers.AdminCreateTimeSlot)
	timeSlots.Put("/:slotId", handlers.AdminUpdateTimeSlot)
	timeSlots.Delete("/:slotId", handlers.AdminDeleteTimeSlot)

	appointments := admin.Group("/appointments")
	appointments.Get("", handlers.AdminListAppointments)
	appointments.Delete("/:appointmentId", handlers.AdminCancelAppointment)

	products := admin.Group("/products")
	products.Get("", handlers.ListProducts)
	products.Post("", handlers.CreateProduct)
	products.Put("/:productId", handlers.UpdateProduct)
	products.Delete("/:productId", handlers.DeleteProduct)

	categories := admin.Group("/categories")
	categories.Get("", handlers.ListCategories)
	categories.Post("", handlers.CreateCategory)
	categories.Put("/:categoryId", handlers.UpdateCategory)
	categories.Delete("/:categoryId", handlers.DeleteCategory)

	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)
}

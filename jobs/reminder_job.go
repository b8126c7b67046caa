package jobs

import (
	"log"
	"time"

	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/models"
	"github.com/fathallah7/health-clinic/notifications"
)

// SendAppointmentReminders emails every patient with a confirmed
// appointment scheduled for tomorrow. Intended to run once a day.
func SendAppointmentReminders() {
	log.Println("Running job: SendAppointmentReminders...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := database.DB.
		Preload("Patient").
		Preload("Slot").
		Where("appointments.status = ? AND time_slots.date >= ? AND time_slots.date < ?", models.AppointmentStatusConfirmed, dayStart, dayEnd).
		Joins("JOIN time_slots on appointments.slot_id = time_slots.id").
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error checking for upcoming appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		log.Printf("Sending reminder for appointment ID: %s", appointment.ID)
		go notifications.SendEmail(
			appointment.Patient.FullName,
			appointment.Patient.Email,
			"Appointment Reminder",
			"<h1>See You Tomorrow</h1><p>This is a reminder that your appointment is scheduled for tomorrow at "+appointment.Slot.StartTime+".</p>",
		)
	}
}

package jobs

import (
	"log"
	"strconv"
	"time"

	config "github.com/fathallah7/health-clinic/configs"
	"github.com/fathallah7/health-clinic/database"
	"github.com/fathallah7/health-clinic/notifications"
	"github.com/fathallah7/health-clinic/services"
)

// ExpireUnpaidAppointments cancels appointments that stayed pending
// longer than APPOINTMENT_PENDING_TTL_MINUTES (default 30), freeing
// their slots for other patients.
func ExpireUnpaidAppointments() {
	ttlMinutes, err := strconv.Atoi(config.Config("APPOINTMENT_PENDING_TTL_MINUTES"))
	if err != nil || ttlMinutes <= 0 {
		ttlMinutes = 30
	}

	canceled, err := services.ExpireStalePendingAppointments(database.DB, time.Duration(ttlMinutes)*time.Minute)
	if err != nil {
		log.Printf("Error expiring pending appointments: %v", err)
		return
	}

	for _, appointment := range canceled {
		log.Printf("Expired unpaid appointment %s, slot freed", appointment.ID)
		go notifications.SendEmail(
			appointment.Patient.FullName,
			appointment.Patient.Email,
			"Your Appointment Was Canceled",
			"<h1>Appointment Canceled</h1><p>Your appointment was canceled because payment was not completed in time. The time slot has been released, feel free to book again.</p>",
		)
	}
}

package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/redis"
	"github.com/cliniccare/clinic-api/scheduler"
	"github.com/cliniccare/clinic-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders mails patients whose scheduled appointment starts
// in roughly one hour. Each appointment is reminded at most once, tracked in
// redis so a restarted worker does not re-mail.
func sendAppointmentReminders() {
	now := time.Now()

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("Doctor").
		Where(`"date" = ? AND status = ?`, scheduler.DayOf(now), models.StatusScheduled).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	for _, appointment := range appointments {
		startsAt, err := appointment.StartsAt()
		if err != nil {
			log.Printf("Skipping reminder: %v", err)
			continue
		}
		if startsAt.Before(startWindow) || startsAt.After(endWindow) {
			continue
		}

		// SETNX marks the appointment as reminded; only the first worker to
		// claim the key sends mail.
		key := fmt.Sprintf("reminder:%d", appointment.ID)
		claimed, err := redis.Client.SetNX(redis.Ctx, key, 1, 2*time.Hour).Result()
		if err != nil {
			log.Printf("Redis error claiming reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		if !claimed {
			continue
		}

		if err := sendReminderEmail(&appointment, startsAt); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			redis.Client.Del(redis.Ctx, key)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Patient.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment, startsAt time.Time) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.Patient.FirstName,
		appointment.Doctor.FirstName, appointment.Doctor.LastName,
		startsAt.Format("2006-01-02"),
		appointment.Time,
		appointment.Reason)

	return utils.SendEmail(appointment.Patient.Email, subject, body)
}

package utils

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/cliniccare/clinic-api/models"
)

// SendBookingConfirmations mails both parties of a freshly booked appointment.
// Mail failures are logged, never surfaced: the booking already happened.
func SendBookingConfirmations(db *gorm.DB, appt *models.Appointment) {
	var patient, doctor models.User
	if err := db.First(&patient, appt.PatientID).Error; err != nil {
		log.Printf("Booking confirmation: failed to load patient %d: %v", appt.PatientID, err)
		return
	}
	if err := db.First(&doctor, appt.DoctorID).Error; err != nil {
		log.Printf("Booking confirmation: failed to load doctor %d: %v", appt.DoctorID, err)
		return
	}

	date := appt.Date.Format("2006-01-02")
	subject := "Appointment Confirmed"

	patientBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been booked.</p>
		<ul>
			<li><strong>Doctor:</strong> %s %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, patient.FirstName, doctor.FirstName, doctor.LastName, date, appt.Time)
	if err := SendEmail(patient.Email, subject, patientBody); err != nil {
		log.Printf("Booking confirmation: failed to mail patient %s: %v", patient.Email, err)
	}

	doctorBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>A new appointment has been booked into your calendar.</p>
		<ul>
			<li><strong>Patient:</strong> %s %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Reason:</strong> %s</li>
		</ul>
	`, doctor.FirstName, patient.FirstName, patient.LastName, date, appt.Time, appt.Reason)
	if err := SendEmail(doctor.Email, subject, doctorBody); err != nil {
		log.Printf("Booking confirmation: failed to mail doctor %s: %v", doctor.Email, err)
	}
}

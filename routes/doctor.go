package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/controllers/doctor"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
)

// SetupDoctorRoutes configures all doctor related routes
func SetupDoctorRoutes(app *fiber.App) {
	d := app.Group("/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	d.Get("/profile", doctor.GetProfile)
	d.Put("/profile", doctor.UpdateProfile)
	d.Post("/profile/picture", doctor.UploadProfilePicture)

	d.Get("/schedule", doctor.GetSchedule)
	d.Put("/schedule", doctor.UpdateSchedule)

	d.Get("/available-slots", doctor.GetAvailableSlots)
	d.Post("/schedule-appointment", doctor.ScheduleAppointment)
	d.Get("/appointments", doctor.GetTodaysAppointments)
	d.Get("/appointments/upcoming", doctor.GetUpcomingAppointments)
	d.Get("/appointments/history", doctor.GetAppointmentHistory)
	d.Patch("/appointment/:id/:status", doctor.UpdateAppointmentStatus)

	d.Get("/patients", doctor.GetPatientsWithAppointments)

	d.Post("/prescribe-medication", doctor.PrescribeMedication)
	d.Get("/prescriptions", doctor.GetPrescriptions)
	d.Get("/prescriptions/patient/:patientId", doctor.GetPatientPrescriptions)
	d.Put("/prescriptions/:id", doctor.UpdatePrescription)
	d.Delete("/prescriptions/:id", doctor.DeletePrescription)
}

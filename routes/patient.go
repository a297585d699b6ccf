package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/controllers/patient"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
)

// SetupPatientRoutes configures all patient related routes
func SetupPatientRoutes(app *fiber.App) {
	// Public doctor directory
	app.Get("/doctors", patient.GetDoctors)

	p := app.Group("/patient", middleware.Protected(), middleware.RequireRole(models.RolePatient))

	p.Get("/profile", patient.GetProfile)
	p.Put("/profile", patient.UpdateProfile)

	p.Get("/available-slots", patient.GetAvailableSlots)
	p.Post("/book-appointment", patient.BookAppointment)
	p.Get("/appointments", patient.GetTodaysAppointments)
	p.Get("/appointments/history", patient.GetAppointmentHistory)

	p.Get("/care-team", patient.GetCareTeam)
	p.Get("/prescriptions", patient.GetPrescriptions)
}

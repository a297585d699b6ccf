package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/controllers"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
)

// SetupAdminRoutes configures all admin related routes
func SetupAdminRoutes(app *fiber.App) {
	a := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	a.Get("/appointments", controllers.GetAllAppointments)
	a.Get("/doctors", controllers.GetDoctors)
	a.Post("/doctors", controllers.CreateDoctor)
	a.Get("/patients", controllers.GetPatients)
}

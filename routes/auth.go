package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/controllers"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Post("/signup", controllers.Register)
	auth.Post("/login", controllers.Login)
}

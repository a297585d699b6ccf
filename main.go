package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/cliniccare/clinic-api/cron"
	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/redis"
	"github.com/cliniccare/clinic-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	db.SeedAdmin()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Clinic API is running")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupAdminRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}

package controllers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/scheduler"
	"github.com/cliniccare/clinic-api/store"
	"github.com/cliniccare/clinic-api/utils"
)

// GetAllAppointments returns every appointment in the clinic, newest day
// first. The engine grants the read-all scope to admins only.
func GetAllAppointments(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	svc := scheduler.NewAppointmentService(store.New(db.DB))
	appts, err := svc.All(ident)
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch appointments")
	}
	return c.JSON(appts)
}

// GetDoctors lists every doctor on the roster.
func GetDoctors(c *fiber.Ctx) error {
	var doctors []models.User
	if err := db.DB.Where("role = ?", models.RoleDoctor).Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
		})
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	return c.JSON(doctors)
}

// GetPatients lists every registered patient.
func GetPatients(c *fiber.Ctx) error {
	var patients []models.User
	if err := db.DB.Where("role = ?", models.RolePatient).Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
		})
	}
	for i := range patients {
		patients[i].Password = ""
	}
	return c.JSON(patients)
}

// CreateDoctor adds a doctor account to the roster.
func CreateDoctor(c *fiber.Ctx) error {
	doctor := new(models.User)
	if err := c.BodyParser(doctor); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if doctor.Email == "" || doctor.Password == "" || doctor.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}

	var existing models.User
	if db.DB.Where("email = ?", doctor.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}
	doctor.Password = string(hashed)
	doctor.Role = models.RoleDoctor

	if err := db.DB.Create(doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create doctor",
		})
	}

	doctor.Password = ""
	return c.Status(fiber.StatusCreated).JSON(doctor)
}

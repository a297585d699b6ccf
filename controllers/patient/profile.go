package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/utils"
)

// GetProfile returns the logged-in patient's profile.
func GetProfile(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var patient models.User
	if err := db.DB.Where("id = ? AND role = ?", ident.SubjectID, models.RolePatient).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}
	patient.Password = ""
	return c.JSON(patient)
}

// UpdateProfile replaces the patient's profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var patient models.User
	if err := db.DB.Where("id = ? AND role = ?", ident.SubjectID, models.RolePatient).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}

	patient.FirstName = body.FirstName
	patient.LastName = body.LastName
	patient.Email = body.Email

	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
		})
	}
	patient.Password = ""
	return c.JSON(patient)
}

// GetDoctors returns the public doctor directory: names and specialties.
func GetDoctors(c *fiber.Ctx) error {
	var doctors []models.User
	if err := db.DB.Select("id", "first_name", "last_name", "specialty").
		Where("role = ?", models.RoleDoctor).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch doctors",
		})
	}
	return c.JSON(doctors)
}

// GetCareTeam lists the distinct doctors from the patient's appointment
// history.
func GetCareTeam(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var doctorIDs []uint
	if err := db.DB.Model(&models.Appointment{}).
		Where("patient_id = ?", ident.SubjectID).
		Distinct("doctor_id").
		Pluck("doctor_id", &doctorIDs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch care team",
		})
	}
	if len(doctorIDs) == 0 {
		return c.JSON([]models.User{})
	}

	var doctors []models.User
	if err := db.DB.Select("id", "first_name", "last_name", "specialty").
		Where("id IN ? AND role = ?", doctorIDs, models.RoleDoctor).
		Find(&doctors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch care team",
		})
	}
	return c.JSON(doctors)
}

// GetPrescriptions lists the patient's own prescriptions.
func GetPrescriptions(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	list, err := prescriptions().ListForPatient(ident, ident.SubjectID)
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch prescriptions")
	}
	return c.JSON(list)
}

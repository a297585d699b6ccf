package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/scheduler"
	"github.com/cliniccare/clinic-api/store"
	"github.com/cliniccare/clinic-api/utils"
)

func prescriptions() *scheduler.PrescriptionService {
	return scheduler.NewPrescriptionService(store.New(db.DB))
}

type prescriptionBody struct {
	PatientID  uint      `json:"patient_id"`
	Medication string    `json:"medication"`
	Dosage     string    `json:"dosage"`
	Frequency  string    `json:"frequency"`
	TillDate   time.Time `json:"till_date"`
}

// PrescribeMedication writes a new prescription owned by the logged-in
// doctor.
func PrescribeMedication(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body prescriptionBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	p, err := prescriptions().Create(ident, scheduler.PrescriptionInput{
		PatientID:  body.PatientID,
		Medication: body.Medication,
		Dosage:     body.Dosage,
		Frequency:  body.Frequency,
		TillDate:   body.TillDate,
	})
	if err != nil {
		return utils.Fail(c, err, "Failed to create prescription")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Medication prescribed successfully",
		"prescription": p,
	})
}

// GetPrescriptions lists everything the logged-in doctor has prescribed.
func GetPrescriptions(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	list, err := prescriptions().ListForDoctor(ident)
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch prescriptions")
	}
	return c.JSON(list)
}

// GetPatientPrescriptions lists what the logged-in doctor has prescribed for
// one patient.
func GetPatientPrescriptions(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	patientID, err := c.ParamsInt("patientId")
	if err != nil || patientID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid patient ID",
		})
	}

	list, err := prescriptions().ListForPatient(ident, uint(patientID))
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch prescriptions")
	}
	return c.JSON(list)
}

// UpdatePrescription replaces the prescribed course in full.
func UpdatePrescription(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid prescription ID",
		})
	}

	var body prescriptionBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	p, err := prescriptions().Update(ident, uint(id), scheduler.PrescriptionInput{
		PatientID:  body.PatientID,
		Medication: body.Medication,
		Dosage:     body.Dosage,
		Frequency:  body.Frequency,
		TillDate:   body.TillDate,
	})
	if err != nil {
		return utils.Fail(c, err, "Failed to update prescription")
	}
	return c.JSON(p)
}

// DeletePrescription removes one of the doctor's own prescriptions.
func DeletePrescription(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid prescription ID",
		})
	}

	if err := prescriptions().Delete(ident, uint(id)); err != nil {
		return utils.Fail(c, err, "Failed to delete prescription")
	}
	return c.JSON(fiber.Map{
		"message": "Prescription deleted successfully",
	})
}

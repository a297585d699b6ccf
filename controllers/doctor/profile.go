package doctor

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/scheduler"
	"github.com/cliniccare/clinic-api/utils"
)

// GetProfile returns the logged-in doctor's profile.
func GetProfile(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var doctor models.User
	if err := db.DB.Where("id = ? AND role = ?", ident.SubjectID, models.RoleDoctor).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}
	doctor.Password = ""
	return c.JSON(doctor)
}

// UpdateProfile replaces the doctor's profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Email         string `json:"email"`
		Specialty     string `json:"specialty"`
		LicenseNumber string `json:"license_number"`
		PhoneNumber   string `json:"phone_number"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var doctor models.User
	if err := db.DB.Where("id = ? AND role = ?", ident.SubjectID, models.RoleDoctor).First(&doctor).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	doctor.FirstName = body.FirstName
	doctor.LastName = body.LastName
	doctor.Email = body.Email
	doctor.Specialty = body.Specialty
	doctor.LicenseNumber = body.LicenseNumber
	doctor.PhoneNumber = body.PhoneNumber

	if err := db.DB.Save(&doctor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
		})
	}
	doctor.Password = ""
	return c.JSON(doctor)
}

// UploadProfilePicture stores the doctor's picture on Cloudinary and saves
// the returned URL.
func UploadProfilePicture(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing picture file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to open uploaded file",
		})
	}
	defer file.Close()

	url, err := utils.UploadProfilePicture(file, fmt.Sprintf("doctor-%d", ident.SubjectID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload picture",
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", ident.SubjectID).
		Update("profile_picture", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save picture URL",
		})
	}

	return c.JSON(fiber.Map{
		"profile_picture": url,
	})
}

// GetSchedule returns the doctor's working-hours configuration.
func GetSchedule(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	sched, err := slots().GetSchedule(ident, ident.SubjectID)
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch schedule")
	}
	return c.JSON(sched)
}

// UpdateSchedule replaces the doctor's working-hours configuration: work
// days, ordered shifts, slot granularity and exception dates.
func UpdateSchedule(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body struct {
		SlotMinutes int                `json:"slot_minutes"`
		WorkDays    models.WeekdaySet  `json:"work_days"`
		Shifts      []struct {
			Name      string `json:"name"`
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
			Position  int    `json:"position"`
		} `json:"shifts"`
		Exceptions []string `json:"exceptions"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	sched := models.DoctorSchedule{
		SlotMinutes: body.SlotMinutes,
		WorkDays:    body.WorkDays,
	}
	for _, sh := range body.Shifts {
		sched.Shifts = append(sched.Shifts, models.ScheduleShift{
			Name:      sh.Name,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
			Position:  sh.Position,
		})
	}
	for _, ex := range body.Exceptions {
		date, err := scheduler.ParseDate(ex)
		if err != nil {
			return utils.Fail(c, err, "Invalid exception date, want YYYY-MM-DD")
		}
		sched.Exceptions = append(sched.Exceptions, models.ScheduleException{Date: date})
	}

	updated, err := slots().UpdateSchedule(ident, &sched)
	if err != nil {
		return utils.Fail(c, err, "Failed to update schedule")
	}
	return c.JSON(updated)
}

// GetPatientsWithAppointments lists the distinct patients in the doctor's
// appointment history, with their last visit and next appointment dates.
func GetPatientsWithAppointments(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var appts []models.Appointment
	if err := db.DB.Where("doctor_id = ?", ident.SubjectID).
		Order(`"date" asc`).Find(&appts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
		})
	}

	byPatient := make(map[uint][]models.Appointment)
	var patientIDs []uint
	for _, a := range appts {
		if _, ok := byPatient[a.PatientID]; !ok {
			patientIDs = append(patientIDs, a.PatientID)
		}
		byPatient[a.PatientID] = append(byPatient[a.PatientID], a)
	}
	if len(patientIDs) == 0 {
		return c.JSON([]fiber.Map{})
	}

	var patients []models.User
	if err := db.DB.Where("id IN ? AND role = ?", patientIDs, models.RolePatient).
		Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
		})
	}

	today := scheduler.DayOf(time.Now())
	result := make([]fiber.Map, 0, len(patients))
	for _, p := range patients {
		var lastVisit, nextAppointment *time.Time
		for i := range byPatient[p.ID] {
			a := byPatient[p.ID][i]
			if a.Date.Before(today) {
				if lastVisit == nil || a.Date.After(*lastVisit) {
					lastVisit = &a.Date
				}
			} else if nextAppointment == nil {
				nextAppointment = &a.Date
			}
		}
		result = append(result, fiber.Map{
			"id":               p.ID,
			"first_name":       p.FirstName,
			"last_name":        p.LastName,
			"email":            p.Email,
			"last_visit":       lastVisit,
			"next_appointment": nextAppointment,
		})
	}
	return c.JSON(result)
}

package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/scheduler"
	"github.com/cliniccare/clinic-api/store"
	"github.com/cliniccare/clinic-api/utils"
)

func slots() *scheduler.SlotService {
	return scheduler.NewSlotService(store.New(db.DB))
}

func appointments() *scheduler.AppointmentService {
	return scheduler.NewAppointmentService(store.New(db.DB))
}

// GetAvailableSlots returns the free slot labels in the logged-in doctor's
// own calendar for the requested date.
func GetAvailableSlots(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	date, err := scheduler.ParseDate(c.Query("date"))
	if err != nil {
		return utils.Fail(c, err, "Invalid date, want YYYY-MM-DD")
	}

	free, err := slots().AvailableSlots(ident, ident.SubjectID, date)
	if err != nil {
		return utils.Fail(c, err, "Failed to compute available slots")
	}
	return c.JSON(free)
}

// ScheduleAppointment books a slot on behalf of a known patient. The engine
// pins the doctor side to the caller.
func ScheduleAppointment(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body struct {
		PatientID uint   `json:"patient_id"`
		Date      string `json:"date"`
		Time      string `json:"time"`
		Reason    string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := scheduler.ParseDate(body.Date)
	if err != nil {
		return utils.Fail(c, err, "Invalid date, want YYYY-MM-DD")
	}

	appt, err := appointments().Book(ident, scheduler.BookingRequest{
		PatientID: body.PatientID,
		Date:      date,
		Time:      body.Time,
		Reason:    body.Reason,
	})
	if err != nil {
		return utils.Fail(c, err, "Failed to schedule appointment")
	}

	go utils.SendBookingConfirmations(db.DB, appt)

	return c.Status(fiber.StatusCreated).JSON(appt)
}

// GetTodaysAppointments returns today's scheduled appointments ordered by
// slot time.
func GetTodaysAppointments(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	appts, err := appointments().Today(ident, time.Now())
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch appointments")
	}
	return c.JSON(appts)
}

// GetUpcomingAppointments returns scheduled appointments on days after today.
func GetUpcomingAppointments(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	appts, err := appointments().Upcoming(ident, time.Now())
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch upcoming appointments")
	}
	return c.JSON(appts)
}

// GetAppointmentHistory returns completed and cancelled appointments, newest
// day first.
func GetAppointmentHistory(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	appts, err := appointments().History(ident)
	if err != nil {
		return utils.Fail(c, err, "Failed to fetch appointment history")
	}
	return c.JSON(appts)
}

// UpdateAppointmentStatus moves one of the doctor's own appointments to
// completed or cancelled.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil || appointmentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment ID",
		})
	}

	next := models.AppointmentStatus(c.Params("status"))
	appt, err := appointments().Transition(ident, uint(appointmentID), next)
	if err != nil {
		return utils.Fail(c, err, "Failed to update appointment status")
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated",
		"appointment": appt,
	})
}

package patient

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cliniccare/clinic-api/db"
	"github.com/cliniccare/clinic-api/middleware"
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

func prescriptions() *scheduler.PrescriptionService {
	return scheduler.NewPrescriptionService(store.New(db.DB))
}

// GetAvailableSlots returns the free slot labels for a chosen doctor and
// date so the patient can pick one.
func GetAvailableSlots(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	doctorID := c.QueryInt("doctor_id")
	if doctorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid doctor ID",
		})
	}
	date, err := scheduler.ParseDate(c.Query("date"))
	if err != nil {
		return utils.Fail(c, err, "Invalid date, want YYYY-MM-DD")
	}

	free, err := slots().AvailableSlots(ident, uint(doctorID), date)
	if err != nil {
		return utils.Fail(c, err, "Failed to compute available slots")
	}
	return c.JSON(free)
}

// BookAppointment books a slot with a doctor. The engine pins the patient
// side to the caller.
func BookAppointment(c *fiber.Ctx) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return utils.Fail(c, err, "Not authenticated")
	}

	var body struct {
		DoctorID uint   `json:"doctor_id"`
		Date     string `json:"date"`
		Time     string `json:"time"`
		Reason   string `json:"reason"`
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
		DoctorID: body.DoctorID,
		Date:     date,
		Time:     body.Time,
		Reason:   body.Reason,
	})
	if err != nil {
		return utils.Fail(c, err, "Failed to book appointment")
	}

	go utils.SendBookingConfirmations(db.DB, appt)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Appointment booked successfully",
		"appointment": appt,
	})
}

// GetTodaysAppointments returns the patient's scheduled appointments for
// today ordered by slot time.
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

// GetAppointmentHistory returns the patient's completed and cancelled
// appointments, newest day first.
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

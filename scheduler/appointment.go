package scheduler

import (
	"fmt"
	"time"

	"github.com/cliniccare/clinic-api/models"
)

// AppointmentService drives the appointment lifecycle and the scoped read
// surface. It is the only writer of appointment rows; appointments are never
// deleted, only transitioned.
type AppointmentService struct {
	store Store
}

func NewAppointmentService(store Store) *AppointmentService {
	return &AppointmentService{store: store}
}

type BookingRequest struct {
	PatientID uint
	DoctorID  uint
	Date      time.Time
	Time      string
	Reason    string
}

// Book creates a scheduled appointment after the conditional occupancy check.
// The guard pins one side of the booking to the caller: patients always book
// for themselves, doctors always book into their own calendar.
func (s *AppointmentService) Book(ident Identity, req BookingRequest) (*models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentCreate); err != nil {
		return nil, err
	}
	switch ident.Role {
	case models.RolePatient:
		req.PatientID = ident.SubjectID
	case models.RoleDoctor:
		req.DoctorID = ident.SubjectID
	}

	label, err := models.ParseSlotLabel(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.PatientID == 0 || req.DoctorID == 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: patient, doctor and date are required", ErrInvalidInput)
	}

	appt := &models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      DayOf(req.Date),
		Time:      label,
		Reason:    req.Reason,
		Status:    models.StatusScheduled,
	}
	if err := s.store.CreateAppointmentIfFree(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Transition moves an appointment owned by the calling doctor out of the
// scheduled state. A cancelled slot is released for rebooking; a completed
// one stays blocked. Terminal appointments never move again.
func (s *AppointmentService) Transition(ident Identity, appointmentID uint, next models.AppointmentStatus) (*models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentTransition); err != nil {
		return nil, err
	}
	if next != models.StatusCompleted && next != models.StatusCancelled {
		return nil, ErrInvalidTransition
	}

	appt, err := s.store.GetAppointment(appointmentID, ident.SubjectID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	return s.store.UpdateAppointmentStatus(appointmentID, ident.SubjectID, next)
}

// Today lists the caller's scheduled appointments for the current day,
// ordered by slot time.
func (s *AppointmentService) Today(ident Identity, now time.Time) ([]models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentRead); err != nil {
		return nil, err
	}
	f := ScopeAppointments(ident, AppointmentFilter{
		Date:     DayOf(now),
		Statuses: []models.AppointmentStatus{models.StatusScheduled},
		Order:    OrderByTimeAsc,
	})
	return s.store.FindAppointments(f)
}

// Upcoming lists the caller's scheduled appointments on days strictly after
// today, ordered by date then slot time.
func (s *AppointmentService) Upcoming(ident Identity, now time.Time) ([]models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentRead); err != nil {
		return nil, err
	}
	f := ScopeAppointments(ident, AppointmentFilter{
		DateAfter: DayOf(now),
		Statuses:  []models.AppointmentStatus{models.StatusScheduled},
		Order:     OrderByDateTimeAsc,
	})
	return s.store.FindAppointments(f)
}

// History lists the caller's completed and cancelled appointments, newest
// day first.
func (s *AppointmentService) History(ident Identity) ([]models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentRead); err != nil {
		return nil, err
	}
	f := ScopeAppointments(ident, AppointmentFilter{
		Statuses: []models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled},
		Order:    OrderByDateDesc,
	})
	return s.store.FindAppointments(f)
}

// All lists every appointment visible to the caller. For doctors and
// patients that is still their own scope; for admins it is the whole
// collection.
func (s *AppointmentService) All(ident Identity) ([]models.Appointment, error) {
	if err := Authorize(ident, ActionAppointmentRead); err != nil {
		return nil, err
	}
	f := ScopeAppointments(ident, AppointmentFilter{Order: OrderByDateDesc})
	return s.store.FindAppointments(f)
}

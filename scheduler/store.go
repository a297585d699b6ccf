package scheduler

import (
	"time"

	"github.com/cliniccare/clinic-api/models"
)

type AppointmentOrder string

const (
	OrderByTimeAsc     AppointmentOrder = "time_asc"
	OrderByDateTimeAsc AppointmentOrder = "date_time_asc"
	OrderByDateDesc    AppointmentOrder = "date_desc"
)

// AppointmentFilter describes one scoped read of the appointment collection.
// Zero-valued fields are not applied.
type AppointmentFilter struct {
	DoctorID        uint
	PatientID       uint
	Date            time.Time // exact calendar-day match
	DateAfter       time.Time // date strictly after, exclusive
	Statuses        []models.AppointmentStatus
	ExcludeStatuses []models.AppointmentStatus
	Order           AppointmentOrder
}

type PrescriptionFilter struct {
	DoctorID  uint
	PatientID uint
}

// Store is the persistence boundary the engine is written against. All
// ownership-scoped lookups return ErrNotFound for rows that are absent or
// owned by someone else, so existence never leaks to non-owners.
// Implementations must make CreateAppointmentIfFree atomic: at most one
// scheduled appointment may ever exist per (doctor, date, time).
type Store interface {
	FindDoctorSchedule(doctorID uint) (*models.DoctorSchedule, error)
	SaveDoctorSchedule(sched *models.DoctorSchedule) error

	FindAppointments(f AppointmentFilter) ([]models.Appointment, error)
	GetAppointment(id, doctorID uint) (*models.Appointment, error)
	CreateAppointmentIfFree(a *models.Appointment) error
	UpdateAppointmentStatus(id, doctorID uint, status models.AppointmentStatus) (*models.Appointment, error)

	CreatePrescription(p *models.Prescription) error
	GetPrescription(id, doctorID uint) (*models.Prescription, error)
	UpdatePrescription(p *models.Prescription) error
	DeletePrescription(id, doctorID uint) error
	FindPrescriptions(f PrescriptionFilter) ([]models.Prescription, error)
}

// DayOf truncates t to its calendar day as a UTC midnight. Appointment dates
// are stored and compared as UTC midnights, so every day computation must go
// through here regardless of the wall clock's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "YYYY-MM-DD" request parameter.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return t, nil
}

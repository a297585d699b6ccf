package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the move from s to next is a legal
// lifecycle step. Only scheduled appointments can move, and only to
// completed or cancelled.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != StatusScheduled {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// ParseSlotLabel validates a slot label in 24h "HH:MM" form and returns it
// normalized. Labels are compared as strings everywhere else, so they must
// all go through here.
func ParseSlotLabel(v string) (string, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return "", fmt.Errorf("invalid slot label %q, want HH:MM", v)
	}
	return t.Format("15:04"), nil
}

type Appointment struct {
	gorm.Model
	PatientID uint              `json:"patient_id" gorm:"index"`
	Patient   User              `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID  uint              `json:"doctor_id" gorm:"index"`
	Doctor    User              `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Date      time.Time         `json:"date" gorm:"index"` // calendar day, midnight UTC
	Time      string            `json:"time"`              // slot label, "HH:MM" 24h
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status" gorm:"type:varchar(16);index"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// StartsAt combines the appointment's date with its slot label.
func (a *Appointment) StartsAt() (time.Time, error) {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %d has malformed slot label %q", a.ID, a.Time)
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, a.Date.Location()), nil
}

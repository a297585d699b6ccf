package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// WeekdaySet is the set of weekdays a doctor takes bookings on, stored as a
// JSONB array.
type WeekdaySet []time.Weekday

// Value implements the driver.Valuer interface
func (w WeekdaySet) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (w *WeekdaySet) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal WeekdaySet: unsupported type %T", value)
	}

	return json.Unmarshal(data, w)
}

// Contains reports whether d is a working day.
func (w WeekdaySet) Contains(d time.Weekday) bool {
	for _, day := range w {
		if day == d {
			return true
		}
	}
	return false
}

// DoctorSchedule is a doctor's working-hours configuration: the weekdays they
// work, their ordered shifts, the slot granularity, and specific dates they
// are unavailable regardless of weekday.
type DoctorSchedule struct {
	gorm.Model
	DoctorID    uint                `json:"doctor_id" gorm:"uniqueIndex"`
	Doctor      User                `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	SlotMinutes int                 `json:"slot_minutes" gorm:"default:60"`
	WorkDays    WeekdaySet          `json:"work_days" gorm:"type:jsonb"`
	Shifts      []ScheduleShift     `json:"shifts" gorm:"foreignKey:ScheduleID"`
	Exceptions  []ScheduleException `json:"exceptions" gorm:"foreignKey:ScheduleID"`
}

// ScheduleShift is one named working interval within a day, e.g. morning
// 09:00-12:00. Shifts are walked in Position order when generating slots.
type ScheduleShift struct {
	gorm.Model
	ScheduleID uint   `json:"schedule_id" gorm:"index"`
	Name       string `json:"name"`
	StartTime  string `json:"start_time"` // "HH:MM" 24h
	EndTime    string `json:"end_time"`   // "HH:MM" 24h
	Position   int    `json:"position"`
}

// ScheduleException marks a calendar date as fully unavailable.
type ScheduleException struct {
	gorm.Model
	ScheduleID uint      `json:"schedule_id" gorm:"uniqueIndex:idx_schedule_exception"`
	Date       time.Time `json:"date" gorm:"uniqueIndex:idx_schedule_exception"`
}

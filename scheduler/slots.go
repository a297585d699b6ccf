package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cliniccare/clinic-api/models"
)

// SlotService computes the bookable time labels for a doctor's day and
// manages the schedule configuration those labels come from. It never
// mutates bookings; races between a slot query and a booking are resolved
// by the lifecycle manager's conditional insert.
type SlotService struct {
	store Store
}

func NewSlotService(store Store) *SlotService {
	return &SlotService{store: store}
}

// AvailableSlots returns the ordered free slot labels for (doctorID, date).
// Doctors are pinned to their own calendar; patients may query any doctor's.
// Non-working weekdays, exception dates, and doctors without a schedule all
// yield an empty list, not an error. Cancelled bookings do not block a slot.
func (s *SlotService) AvailableSlots(ident Identity, doctorID uint, date time.Time) ([]string, error) {
	if err := Authorize(ident, ActionScheduleRead); err != nil {
		return nil, err
	}
	if ident.Role == models.RoleDoctor {
		doctorID = ident.SubjectID
	}
	day := DayOf(date)

	sched, err := s.store.FindDoctorSchedule(doctorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	if !sched.WorkDays.Contains(day.Weekday()) {
		return []string{}, nil
	}
	for _, ex := range sched.Exceptions {
		if DayOf(ex.Date).Equal(day) {
			return []string{}, nil
		}
	}

	candidates := expandShifts(sched)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	booked, err := s.store.FindAppointments(AppointmentFilter{
		DoctorID:        doctorID,
		Date:            day,
		ExcludeStatuses: []models.AppointmentStatus{models.StatusCancelled},
	})
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]bool, len(booked))
	for _, a := range booked {
		blocked[a.Time] = true
	}

	free := make([]string, 0, len(candidates))
	for _, label := range candidates {
		if !blocked[label] {
			free = append(free, label)
		}
	}
	return free, nil
}

// expandShifts walks each shift interval [start, end) in SlotMinutes steps
// and returns the deduplicated labels in shift position order.
func expandShifts(sched *models.DoctorSchedule) []string {
	step := time.Duration(sched.SlotMinutes) * time.Minute
	if step <= 0 {
		step = time.Hour
	}

	shifts := make([]models.ScheduleShift, len(sched.Shifts))
	copy(shifts, sched.Shifts)
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].Position < shifts[j].Position
	})

	var labels []string
	seen := make(map[string]bool)
	for _, sh := range shifts {
		start, err := time.Parse("15:04", sh.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("15:04", sh.EndTime)
		if err != nil {
			continue
		}
		for t := start; t.Before(end); t = t.Add(step) {
			label := t.Format("15:04")
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	return labels
}

// GetSchedule returns a doctor's schedule configuration. Doctors always read
// their own; patients may read any doctor's to pick a slot.
func (s *SlotService) GetSchedule(ident Identity, doctorID uint) (*models.DoctorSchedule, error) {
	if err := Authorize(ident, ActionScheduleRead); err != nil {
		return nil, err
	}
	if ident.Role == models.RoleDoctor {
		doctorID = ident.SubjectID
	}
	return s.store.FindDoctorSchedule(doctorID)
}

// UpdateSchedule replaces the calling doctor's schedule configuration.
// Shifts must parse and may not end before they start; exception dates are
// deduplicated to one entry per day.
func (s *SlotService) UpdateSchedule(ident Identity, sched *models.DoctorSchedule) (*models.DoctorSchedule, error) {
	if err := Authorize(ident, ActionScheduleUpdate); err != nil {
		return nil, err
	}
	sched.DoctorID = ident.SubjectID

	if sched.SlotMinutes < 0 {
		return nil, fmt.Errorf("%w: slot_minutes must not be negative", ErrInvalidInput)
	}
	for _, sh := range sched.Shifts {
		start, err := time.Parse("15:04", sh.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: shift %q start time %q, want HH:MM", ErrInvalidInput, sh.Name, sh.StartTime)
		}
		end, err := time.Parse("15:04", sh.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: shift %q end time %q, want HH:MM", ErrInvalidInput, sh.Name, sh.EndTime)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: shift %q ends before it starts", ErrInvalidInput, sh.Name)
		}
	}

	seen := make(map[time.Time]bool)
	unique := sched.Exceptions[:0]
	for _, ex := range sched.Exceptions {
		day := DayOf(ex.Date)
		if seen[day] {
			continue
		}
		seen[day] = true
		ex.Date = day
		unique = append(unique, ex)
	}
	sched.Exceptions = unique

	if err := s.store.SaveDoctorSchedule(sched); err != nil {
		return nil, err
	}
	return sched, nil
}

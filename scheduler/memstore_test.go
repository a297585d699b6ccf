package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/cliniccare/clinic-api/models"
)

// memStore is an in-memory Store for tests. It honors the same contract as
// the database implementation: ownership-scoped lookups return ErrNotFound
// for foreign rows, and CreateAppointmentIfFree is atomic under its mutex.
type memStore struct {
	mu            sync.Mutex
	nextID        uint
	schedules     map[uint]*models.DoctorSchedule
	appointments  map[uint]*models.Appointment
	prescriptions map[uint]*models.Prescription
}

func newMemStore() *memStore {
	return &memStore{
		nextID:        1,
		schedules:     make(map[uint]*models.DoctorSchedule),
		appointments:  make(map[uint]*models.Appointment),
		prescriptions: make(map[uint]*models.Prescription),
	}
}

func (m *memStore) id() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memStore) FindDoctorSchedule(doctorID uint) (*models.DoctorSchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sched, ok := m.schedules[doctorID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sched
	return &cp, nil
}

func (m *memStore) SaveDoctorSchedule(sched *models.DoctorSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sched
	m.schedules[sched.DoctorID] = &cp
	return nil
}

func matches(a *models.Appointment, f AppointmentFilter) bool {
	if f.DoctorID != 0 && a.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != 0 && a.PatientID != f.PatientID {
		return false
	}
	if !f.Date.IsZero() && !a.Date.Equal(f.Date) {
		return false
	}
	if !f.DateAfter.IsZero() && !a.Date.After(f.DateAfter) {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if a.Status == s {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	for _, s := range f.ExcludeStatuses {
		if a.Status == s {
			return false
		}
	}
	return true
}

func (m *memStore) FindAppointments(f AppointmentFilter) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appointments {
		if matches(a, f) {
			out = append(out, *a)
		}
	}
	switch f.Order {
	case OrderByTimeAsc:
		sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	case OrderByDateTimeAsc:
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.Before(out[j].Date)
			}
			return out[i].Time < out[j].Time
		})
	case OrderByDateDesc:
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].Time < out[j].Time
		})
	}
	return out, nil
}

func (m *memStore) GetAppointment(id, doctorID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) CreateAppointmentIfFree(a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.appointments {
		if ex.DoctorID == a.DoctorID && ex.Date.Equal(a.Date) && ex.Time == a.Time && ex.Status == models.StatusScheduled {
			return ErrSlotConflict
		}
	}
	a.ID = m.id()
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *memStore) UpdateAppointmentStatus(id, doctorID uint, status models.AppointmentStatus) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok || a.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	if !a.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	a.Status = status
	cp := *a
	return &cp, nil
}

func (m *memStore) CreatePrescription(p *models.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	cp := *p
	m.prescriptions[p.ID] = &cp
	return nil
}

func (m *memStore) GetPrescription(id, doctorID uint) (*models.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prescriptions[id]
	if !ok || p.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpdatePrescription(p *models.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.prescriptions[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.prescriptions[p.ID] = &cp
	return nil
}

func (m *memStore) DeletePrescription(id, doctorID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.prescriptions[id]
	if !ok || p.DoctorID != doctorID {
		return ErrNotFound
	}
	delete(m.prescriptions, id)
	return nil
}

func (m *memStore) FindPrescriptions(f PrescriptionFilter) ([]models.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Prescription
	for _, p := range m.prescriptions {
		if f.DoctorID != 0 && p.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != 0 && p.PatientID != f.PatientID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// day is a test helper building a calendar day in UTC.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

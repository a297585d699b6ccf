package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/scheduler"
)

// GormStore is the Postgres-backed implementation of scheduler.Store.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindDoctorSchedule(doctorID uint) (*models.DoctorSchedule, error) {
	var sched models.DoctorSchedule
	err := s.db.
		Preload("Shifts", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Exceptions").
		Where("doctor_id = ?", doctorID).
		First(&sched).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, scheduler.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find doctor schedule: %w", err)
	}
	return &sched, nil
}

// SaveDoctorSchedule replaces the doctor's configuration wholesale; shifts
// and exception dates are rewritten rather than diffed since the set is tiny.
func (s *GormStore) SaveDoctorSchedule(sched *models.DoctorSchedule) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.DoctorSchedule
		err := tx.Where("doctor_id = ?", sched.DoctorID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(sched).Error
		case err != nil:
			return err
		}

		sched.ID = existing.ID
		sched.CreatedAt = existing.CreatedAt
		if err := tx.Unscoped().Where("schedule_id = ?", existing.ID).Delete(&models.ScheduleShift{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("schedule_id = ?", existing.ID).Delete(&models.ScheduleException{}).Error; err != nil {
			return err
		}
		for i := range sched.Shifts {
			sched.Shifts[i].ID = 0
			sched.Shifts[i].ScheduleID = existing.ID
		}
		for i := range sched.Exceptions {
			sched.Exceptions[i].ID = 0
			sched.Exceptions[i].ScheduleID = existing.ID
		}
		return tx.Save(sched).Error
	})
	if err != nil {
		return fmt.Errorf("save doctor schedule: %w", err)
	}
	return nil
}

func (s *GormStore) FindAppointments(f scheduler.AppointmentFilter) ([]models.Appointment, error) {
	q := s.db.Model(&models.Appointment{}).Preload("Patient").Preload("Doctor")
	if f.DoctorID != 0 {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != 0 {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if !f.Date.IsZero() {
		q = q.Where(`"date" = ?`, f.Date)
	}
	if !f.DateAfter.IsZero() {
		q = q.Where(`"date" > ?`, f.DateAfter)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	for _, st := range f.ExcludeStatuses {
		q = q.Where("status <> ?", st)
	}

	switch f.Order {
	case scheduler.OrderByTimeAsc:
		q = q.Order(`"time" asc`)
	case scheduler.OrderByDateTimeAsc:
		q = q.Order(`"date" asc, "time" asc`)
	case scheduler.OrderByDateDesc:
		q = q.Order(`"date" desc, "time" asc`)
	}

	var appts []models.Appointment
	if err := q.Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	return appts, nil
}

func (s *GormStore) GetAppointment(id, doctorID uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Preload("Patient").
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&appt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, scheduler.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &appt, nil
}

// CreateAppointmentIfFree inserts the appointment only if no scheduled one
// occupies the same (doctor, date, time). Conflicting rows are locked before
// the occupancy check, and the partial unique index created by db.Migrate
// backstops the window where there is no row to lock yet.
func (s *GormStore) CreateAppointmentIfFree(a *models.Appointment) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE doctor_id = ? AND "date" = ? AND "time" = ? AND status = ? AND deleted_at IS NULL
			FOR UPDATE
			LIMIT 1
		`, a.DoctorID, a.Date, a.Time, models.StatusScheduled).
			Scan(&existing).Error
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return scheduler.ErrSlotConflict
		}
		return tx.Create(a).Error
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrSlotConflict) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return scheduler.ErrSlotConflict
		}
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateAppointmentStatus(id, doctorID uint, status models.AppointmentStatus) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE id = ? AND doctor_id = ? AND deleted_at IS NULL
			FOR UPDATE
		`, id, doctorID).Scan(&appt).Error
		if err != nil {
			return err
		}
		if appt.ID == 0 {
			return scheduler.ErrNotFound
		}
		if !appt.Status.CanTransitionTo(status) {
			return scheduler.ErrInvalidTransition
		}
		appt.Status = status
		return tx.Save(&appt).Error
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrNotFound) || errors.Is(err, scheduler.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return &appt, nil
}

func (s *GormStore) CreatePrescription(p *models.Prescription) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}
	return nil
}

func (s *GormStore) GetPrescription(id, doctorID uint) (*models.Prescription, error) {
	var p models.Prescription
	err := s.db.Where("id = ? AND doctor_id = ?", id, doctorID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, scheduler.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return &p, nil
}

func (s *GormStore) UpdatePrescription(p *models.Prescription) error {
	if err := s.db.Save(p).Error; err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	return nil
}

func (s *GormStore) DeletePrescription(id, doctorID uint) error {
	res := s.db.Where("id = ? AND doctor_id = ?", id, doctorID).Delete(&models.Prescription{})
	if res.Error != nil {
		return fmt.Errorf("delete prescription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return scheduler.ErrNotFound
	}
	return nil
}

func (s *GormStore) FindPrescriptions(f scheduler.PrescriptionFilter) ([]models.Prescription, error) {
	q := s.db.Model(&models.Prescription{}).Preload("Doctor").Preload("Patient")
	if f.DoctorID != 0 {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != 0 {
		q = q.Where("patient_id = ?", f.PatientID)
	}

	var prescriptions []models.Prescription
	if err := q.Order("created_at desc").Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("find prescriptions: %w", err)
	}
	return prescriptions, nil
}

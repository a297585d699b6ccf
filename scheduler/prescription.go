package scheduler

import (
	"fmt"
	"time"

	"github.com/cliniccare/clinic-api/models"
)

// PrescriptionService manages prescriptions, each exclusively owned by the
// doctor who wrote it. There is no occupancy check: a patient may hold any
// number of concurrent prescriptions.
type PrescriptionService struct {
	store Store
}

func NewPrescriptionService(store Store) *PrescriptionService {
	return &PrescriptionService{store: store}
}

type PrescriptionInput struct {
	PatientID  uint
	Medication string
	Dosage     string
	Frequency  string
	TillDate   time.Time
}

func (in PrescriptionInput) validate() error {
	if in.Medication == "" || in.Dosage == "" || in.Frequency == "" {
		return fmt.Errorf("%w: medication, dosage and frequency are required", ErrInvalidInput)
	}
	return nil
}

// Create writes a new prescription owned by the calling doctor.
func (s *PrescriptionService) Create(ident Identity, in PrescriptionInput) (*models.Prescription, error) {
	if err := Authorize(ident, ActionPrescriptionCreate); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.PatientID == 0 {
		return nil, fmt.Errorf("%w: patient is required", ErrInvalidInput)
	}

	p := &models.Prescription{
		PatientID:  in.PatientID,
		DoctorID:   ident.SubjectID,
		Medication: in.Medication,
		Dosage:     in.Dosage,
		Frequency:  in.Frequency,
		TillDate:   in.TillDate,
	}
	if err := s.store.CreatePrescription(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the prescribed course in full. A prescription owned by
// another doctor is indistinguishable from one that does not exist.
func (s *PrescriptionService) Update(ident Identity, id uint, in PrescriptionInput) (*models.Prescription, error) {
	if err := Authorize(ident, ActionPrescriptionUpdate); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetPrescription(id, ident.SubjectID)
	if err != nil {
		return nil, err
	}
	p.Medication = in.Medication
	p.Dosage = in.Dosage
	p.Frequency = in.Frequency
	p.TillDate = in.TillDate
	if err := s.store.UpdatePrescription(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a prescription owned by the calling doctor.
func (s *PrescriptionService) Delete(ident Identity, id uint) error {
	if err := Authorize(ident, ActionPrescriptionDelete); err != nil {
		return err
	}
	return s.store.DeletePrescription(id, ident.SubjectID)
}

// ListForPatient lists prescriptions for one patient. Patients are pinned to
// themselves; doctors see only what they prescribed for that patient.
func (s *PrescriptionService) ListForPatient(ident Identity, patientID uint) ([]models.Prescription, error) {
	if err := Authorize(ident, ActionPrescriptionRead); err != nil {
		return nil, err
	}
	f := ScopePrescriptions(ident, PrescriptionFilter{PatientID: patientID})
	return s.store.FindPrescriptions(f)
}

// ListForDoctor lists everything the calling doctor has prescribed.
func (s *PrescriptionService) ListForDoctor(ident Identity) ([]models.Prescription, error) {
	if err := Authorize(ident, ActionPrescriptionRead); err != nil {
		return nil, err
	}
	f := ScopePrescriptions(ident, PrescriptionFilter{})
	return s.store.FindPrescriptions(f)
}

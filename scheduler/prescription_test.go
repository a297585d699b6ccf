package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/cliniccare/clinic-api/models"
)

var (
	prescriber = Identity{SubjectID: 1, Role: models.RoleDoctor}
	otherDoc   = Identity{SubjectID: 2, Role: models.RoleDoctor}
)

func sampleInput(patientID uint) PrescriptionInput {
	return PrescriptionInput{
		PatientID:  patientID,
		Medication: "amoxicillin",
		Dosage:     "500mg",
		Frequency:  "3x daily",
		TillDate:   day(2026, time.February, 1),
	}
}

func TestPrescriptionCreateAndList(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	p, err := svc.Create(prescriber, sampleInput(7))
	if err != nil {
		t.Fatal(err)
	}
	if p.DoctorID != 1 {
		t.Errorf("DoctorID = %d, want the prescriber 1", p.DoctorID)
	}

	list, err := svc.ListForPatient(Identity{SubjectID: 7, Role: models.RolePatient}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Medication != "amoxicillin" {
		t.Errorf("ListForPatient = %v, want the created prescription", list)
	}

	list, err = svc.ListForDoctor(prescriber)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("ListForDoctor = %d rows, want 1", len(list))
	}
}

func TestPrescriptionCreateValidation(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	tests := []struct {
		name   string
		mutate func(*PrescriptionInput)
	}{
		{"missing medication", func(in *PrescriptionInput) { in.Medication = "" }},
		{"missing dosage", func(in *PrescriptionInput) { in.Dosage = "" }},
		{"missing frequency", func(in *PrescriptionInput) { in.Frequency = "" }},
		{"missing patient", func(in *PrescriptionInput) { in.PatientID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput(7)
			tt.mutate(&in)
			if _, err := svc.Create(prescriber, in); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Create error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestPrescriptionCreateForbiddenForPatient(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())
	patient := Identity{SubjectID: 7, Role: models.RolePatient}

	if _, err := svc.Create(patient, sampleInput(7)); !errors.Is(err, ErrForbidden) {
		t.Errorf("Create as patient error = %v, want ErrForbidden", err)
	}
}

func TestPrescriptionUpdateReplacesCourse(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	p, err := svc.Create(prescriber, sampleInput(7))
	if err != nil {
		t.Fatal(err)
	}

	in := sampleInput(7)
	in.Medication = "ibuprofen"
	in.Dosage = "200mg"
	updated, err := svc.Update(prescriber, p.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Medication != "ibuprofen" || updated.Dosage != "200mg" {
		t.Errorf("Update = %+v, want replaced course", updated)
	}
	if updated.PatientID != 7 || updated.DoctorID != 1 {
		t.Errorf("Update changed ownership: patient %d doctor %d", updated.PatientID, updated.DoctorID)
	}
}

func TestPrescriptionForeignOwnershipLooksAbsent(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	p, err := svc.Create(prescriber, sampleInput(7))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(otherDoc, p.ID, sampleInput(7)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update by non-owner error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(otherDoc, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete by non-owner error = %v, want ErrNotFound", err)
	}

	// Still there for the owner.
	list, err := svc.ListForDoctor(prescriber)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("prescription lost after foreign delete attempt, have %d", len(list))
	}
}

func TestPrescriptionDelete(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	p, err := svc.Create(prescriber, sampleInput(7))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(prescriber, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(prescriber, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestPrescriptionListScoping(t *testing.T) {
	svc := NewPrescriptionService(newMemStore())

	if _, err := svc.Create(prescriber, sampleInput(7)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(otherDoc, sampleInput(7)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(prescriber, sampleInput(8)); err != nil {
		t.Fatal(err)
	}

	// Patient 7 sees both doctors' prescriptions for them, nothing else.
	list, err := svc.ListForPatient(Identity{SubjectID: 7, Role: models.RolePatient}, 999)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("patient 7 sees %d prescriptions, want 2", len(list))
	}

	// Doctor 1 narrowed to patient 7 sees only their own for that patient.
	list, err = svc.ListForPatient(prescriber, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].DoctorID != 1 {
		t.Errorf("doctor 1 for patient 7 sees %v, want only their own row", list)
	}
}

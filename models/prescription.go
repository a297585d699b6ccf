package models

import (
	"time"

	"gorm.io/gorm"
)

// Prescription is a medication order written by a doctor for a patient. It is
// owned by the prescribing doctor and is independent of any single
// appointment; a patient may hold several concurrent prescriptions.
type Prescription struct {
	gorm.Model
	PatientID  uint      `json:"patient_id" gorm:"index"`
	Patient    User      `json:"patient,omitempty" gorm:"foreignKey:PatientID"`
	DoctorID   uint      `json:"doctor_id" gorm:"index"`
	Doctor     User      `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Medication string    `json:"medication"`
	Dosage     string    `json:"dosage"`
	Frequency  string    `json:"frequency"`
	TillDate   time.Time `json:"till_date"`
}

package scheduler

import (
	"github.com/cliniccare/clinic-api/models"
)

type Action string

const (
	ActionAppointmentCreate     Action = "appointments:create"
	ActionAppointmentRead       Action = "appointments:read"
	ActionAppointmentTransition Action = "appointments:transition"
	ActionPrescriptionCreate    Action = "prescriptions:create"
	ActionPrescriptionRead      Action = "prescriptions:read"
	ActionPrescriptionUpdate    Action = "prescriptions:update"
	ActionPrescriptionDelete    Action = "prescriptions:delete"
	ActionScheduleRead          Action = "schedule:read"
	ActionScheduleUpdate        Action = "schedule:update"
)

// policy is the single role × action capability table. Every engine entry
// point checks it before touching the store, so a missed per-route check
// cannot widen access.
var policy = map[models.Role]map[Action]bool{
	models.RolePatient: {
		ActionAppointmentCreate: true,
		ActionAppointmentRead:   true,
		ActionPrescriptionRead:  true,
		ActionScheduleRead:      true,
	},
	models.RoleDoctor: {
		ActionAppointmentCreate:     true,
		ActionAppointmentRead:       true,
		ActionAppointmentTransition: true,
		ActionPrescriptionCreate:    true,
		ActionPrescriptionRead:      true,
		ActionPrescriptionUpdate:    true,
		ActionPrescriptionDelete:    true,
		ActionScheduleRead:          true,
		ActionScheduleUpdate:        true,
	},
	models.RoleAdmin: {
		ActionAppointmentRead: true,
	},
}

// Authorize checks the policy table for the identity's role.
func Authorize(ident Identity, action Action) error {
	if ident.SubjectID == 0 || !ident.Role.Valid() {
		return ErrUnauthenticated
	}
	if !policy[ident.Role][action] {
		return ErrForbidden
	}
	return nil
}

// ScopeAppointments narrows an appointment filter to the rows the identity is
// allowed to see. The scope is injected here, never caller-supplied: a doctor
// is pinned to their own calendar and a patient to their own bookings no
// matter what the filter arrived with. Admins read everything.
func ScopeAppointments(ident Identity, f AppointmentFilter) AppointmentFilter {
	switch ident.Role {
	case models.RolePatient:
		f.PatientID = ident.SubjectID
		f.DoctorID = 0
	case models.RoleDoctor:
		f.DoctorID = ident.SubjectID
		f.PatientID = 0
	}
	return f
}

// ScopePrescriptions narrows a prescription filter the same way. A patient
// only ever sees prescriptions written for them; a doctor only ever sees
// prescriptions they wrote, optionally narrowed further to one patient.
func ScopePrescriptions(ident Identity, f PrescriptionFilter) PrescriptionFilter {
	switch ident.Role {
	case models.RolePatient:
		f.PatientID = ident.SubjectID
		f.DoctorID = 0
	case models.RoleDoctor:
		f.DoctorID = ident.SubjectID
	}
	return f
}

package scheduler

import (
	"github.com/cliniccare/clinic-api/models"
)

// Identity is the resolved caller of a single request, produced by the auth
// middleware from a verified token. It is never persisted and carries exactly
// what was embedded at token issuance.
type Identity struct {
	SubjectID uint
	Role      models.Role
}

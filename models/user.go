package models

import (
	"time"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"password,omitempty"`
	Role      Role   `json:"role" gorm:"type:varchar(16);index"`

	// Doctor-only fields, empty for patients and admins.
	Specialty      string `json:"specialty,omitempty"`
	LicenseNumber  string `json:"license_number,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

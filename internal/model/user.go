package model

import (
	"github.com/google/uuid"
)

// User roles
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User represents a registered patient or doctor. Users are never deleted;
// the serialized collection keeps insertion order.
type User struct {
	ID           uuid.UUID `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	InsuranceID  string    `json:"insurance_id,omitempty"` // patient only
	Specialty    string    `json:"specialty,omitempty"`    // doctor only
}

// Sanitized returns a copy safe to hand to API clients or the session record.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Actor is the caller identity every protected operation receives explicitly.
type Actor struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func (a Actor) IsPatient() bool { return a.Role == RolePatient }
func (a Actor) IsDoctor() bool  { return a.Role == RoleDoctor }

// SignupRequest represents patient self-registration parameters
type SignupRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	InsuranceID string `json:"insurance_id" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// AddDoctorRequest represents doctor creation parameters (doctor-only view)
type AddDoctorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// DoctorRoster is a doctor plus assigned-case counts for the roster view.
type DoctorRoster struct {
	Doctor   User `json:"doctor"`
	Total    int  `json:"total"`
	Open     int  `json:"open"`
	InReview int  `json:"in_review"`
	Closed   int  `json:"closed"`
}

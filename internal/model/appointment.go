package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known appointment statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled patient-doctor meeting. Appointments are never
// deleted; cancellation is a status change.
type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	PatientID uuid.UUID         `json:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id"`
	DateTime  time.Time         `json:"date_time"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type CreateAppointmentRequest struct {
	DateTime time.Time `json:"date_time" binding:"required"`
	Reason   string    `json:"reason" binding:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required,apptstatus"`
}

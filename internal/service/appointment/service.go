package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

type Service struct {
	appointments    repository.AppointmentRepository
	defaultDoctorID uuid.UUID
}

func NewService(appointments repository.AppointmentRepository, defaultDoctorID uuid.UUID) *Service {
	return &Service{appointments: appointments, defaultDoctorID: defaultDoctorID}
}

// Create schedules an appointment for the calling patient with the default
// doctor. Status is always scheduled at creation.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if !actor.IsPatient() {
		return nil, apperrors.Forbidden("only patients can book appointments")
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.Validation("appointment reason is required")
	}
	if req.DateTime.IsZero() {
		return nil, apperrors.Validation("appointment date is required")
	}

	a := &model.Appointment{
		ID:        uuid.New(),
		PatientID: actor.UserID,
		DoctorID:  s.defaultDoctorID,
		DateTime:  req.DateTime,
		Reason:    reason,
		Status:    model.AppointmentStatusScheduled,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().Str("appointment_id", a.ID.String()).Str("patient_id", a.PatientID.String()).Msg("appointment booked")
	return a, nil
}

// SetStatus overwrites the appointment status. Doctors only, transitions
// unrestricted.
func (s *Service) SetStatus(ctx context.Context, actor model.Actor, appointmentID uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can update appointment status")
	}
	if !status.Valid() {
		return nil, apperrors.Validation("unknown appointment status")
	}

	a, err := s.appointments.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	a.Status = status
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForPatient returns the patient's appointments in insertion order.
func (s *Service) ListForPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]model.Appointment, error) {
	if actor.IsPatient() && actor.UserID != patientID {
		return nil, apperrors.Forbidden("patients can only list their own appointments")
	}
	return s.appointments.ListByPatient(ctx, patientID)
}

// ListForDoctor returns the doctor's appointments in insertion order.
func (s *Service) ListForDoctor(ctx context.Context, actor model.Actor, doctorID uuid.UUID) ([]model.Appointment, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can list assigned appointments")
	}
	return s.appointments.ListByDoctor(ctx, doctorID)
}

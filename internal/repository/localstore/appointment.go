package localstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

type AppointmentRepository struct {
	mu      sync.Mutex
	backend kv.Backend
}

func NewAppointmentRepository(backend kv.Backend) *AppointmentRepository {
	return &AppointmentRepository{backend: backend}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appts, err := loadCollection[model.Appointment](ctx, r.backend, keyAppointments)
	if err != nil {
		return err
	}
	appts = append(appts, *a)
	return saveCollection(ctx, r.backend, keyAppointments, appts)
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appts, err := loadCollection[model.Appointment](ctx, r.backend, keyAppointments)
	if err != nil {
		return nil, err
	}
	for i := range appts {
		if appts[i].ID == id {
			a := appts[i]
			return &a, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *AppointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appts, err := loadCollection[model.Appointment](ctx, r.backend, keyAppointments)
	if err != nil {
		return err
	}
	for i := range appts {
		if appts[i].ID == a.ID {
			appts[i] = *a
			return saveCollection(ctx, r.backend, keyAppointments, appts)
		}
	}
	return apperrors.NotFound("appointment", nil)
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error) {
	appts, err := loadCollection[model.Appointment](ctx, r.backend, keyAppointments)
	if err != nil {
		return nil, err
	}
	var out []model.Appointment
	for _, a := range appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Appointment, error) {
	appts, err := loadCollection[model.Appointment](ctx, r.backend, keyAppointments)
	if err != nil {
		return nil, err
	}
	var out []model.Appointment
	for _, a := range appts {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListByRole(ctx context.Context, role string) ([]model.User, error)
}

type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	Get(ctx context.Context, id uuid.UUID) (*model.Case, error)
	Update(ctx context.Context, c *model.Case) error
	List(ctx context.Context) ([]model.Case, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Case, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Case, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Appointment, error)
}

// SessionRepository persists the single active-session record. Load returns
// (nil, nil) when logged out.
type SessionRepository interface {
	Save(ctx context.Context, user model.User) error
	Load(ctx context.Context) (*model.User, error)
	Clear(ctx context.Context) error
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/localstore"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
)

type fixture struct {
	svc    *Service
	john   model.Actor
	sarah  model.Actor
	doctor model.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	backend := kv.NewMemoryBackend()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, localstore.Seed(ctx, backend, hasher))

	users := localstore.NewUserRepository(backend)
	actorOf := func(email string) model.Actor {
		u, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		return model.Actor{UserID: u.ID, Role: u.Role}
	}

	doctor := actorOf(localstore.DemoDoctorEmail)
	return &fixture{
		svc:    NewService(localstore.NewAppointmentRepository(backend), doctor.UserID),
		john:   actorOf("john@example.com"),
		sarah:  actorOf("sarah@example.com"),
		doctor: doctor,
	}
}

func TestCreate_Defaults(t *testing.T) {
	f := newFixture(t)
	when := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)

	a, err := f.svc.Create(context.Background(), f.sarah, &model.CreateAppointmentRequest{
		DateTime: when,
		Reason:   "  Annual check-up  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Annual check-up", a.Reason)
	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)
	assert.Equal(t, f.doctor.UserID, a.DoctorID)
	assert.Equal(t, f.sarah.UserID, a.PatientID)
	assert.Equal(t, when, a.DateTime)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	when := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)

	_, err := f.svc.Create(ctx, f.sarah, &model.CreateAppointmentRequest{DateTime: when, Reason: "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))

	_, err = f.svc.Create(ctx, f.sarah, &model.CreateAppointmentRequest{Reason: "check-up"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestCreate_DoctorForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.doctor, &model.CreateAppointmentRequest{
		DateTime: time.Now(), Reason: "x",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

func TestSetStatus_DoctorOnlyUnrestricted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	booked, err := f.svc.ListForDoctor(ctx, f.doctor, f.doctor.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, booked)
	target := booked[0]

	_, err = f.svc.SetStatus(ctx, f.john, target.ID, model.AppointmentStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	a, err := f.svc.SetStatus(ctx, f.doctor, target.ID, model.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, a.Status)

	// cancelled back to scheduled is allowed
	a, err = f.svc.SetStatus(ctx, f.doctor, target.ID, model.AppointmentStatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, a.Status)

	_, err = f.svc.SetStatus(ctx, f.doctor, target.ID, model.AppointmentStatus("postponed"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestSetStatus_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetStatus(context.Background(), f.doctor, uuid.New(), model.AppointmentStatusCompleted)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestListForPatient_Isolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	johns, err := f.svc.ListForPatient(ctx, f.john, f.john.UserID)
	require.NoError(t, err)
	require.Len(t, johns, 1)
	assert.Equal(t, "Follow-up on chest pain", johns[0].Reason)

	sarahs, err := f.svc.ListForPatient(ctx, f.sarah, f.sarah.UserID)
	require.NoError(t, err)
	assert.Empty(t, sarahs)

	_, err = f.svc.ListForPatient(ctx, f.sarah, f.john.UserID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

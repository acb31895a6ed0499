package medcase

import (
	"context"
	"testing"

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
	cases  *localstore.CaseRepository
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
	cases := localstore.NewCaseRepository(backend)

	actorOf := func(email string) model.Actor {
		u, err := users.GetByEmail(ctx, email)
		require.NoError(t, err)
		return model.Actor{UserID: u.ID, Role: u.Role}
	}

	doctor := actorOf(localstore.DemoDoctorEmail)
	return &fixture{
		svc:    NewService(cases, users, doctor.UserID),
		cases:  cases,
		john:   actorOf("john@example.com"),
		sarah:  actorOf("sarah@example.com"),
		doctor: doctor,
	}
}

func TestCreate_AssignsDefaultDoctor(t *testing.T) {
	f := newFixture(t)

	c, err := f.svc.Create(context.Background(), f.john, &model.CreateCaseRequest{
		Title: "  Persistent cough  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Persistent cough", c.Title)
	assert.Equal(t, model.CaseStatusOpen, c.Status)
	assert.Equal(t, f.doctor.UserID, c.DoctorID)
	assert.Equal(t, f.john.UserID, c.PatientID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreate_WhitespaceTitleRejectedAndNothingStored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.cases.List(ctx)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.john, &model.CreateCaseRequest{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))

	after, err := f.cases.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestCreate_DoctorForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.doctor, &model.CreateCaseRequest{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

func TestSetStatus_PatientForbiddenStatusUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	johns, err := f.svc.ListForPatient(ctx, f.john, f.john.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, johns)
	target := johns[0]

	_, err = f.svc.SetStatus(ctx, f.john, target.ID, model.CaseStatusClosed)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	got, err := f.svc.Get(ctx, f.doctor, target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Status, got.Status)
}

func TestSetStatus_AnyValidStatusOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assigned, err := f.svc.ListForDoctor(ctx, f.doctor, f.doctor.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, assigned)
	target := assigned[0]

	// closed straight from open, then reopened: no transition graph.
	c, err := f.svc.SetStatus(ctx, f.doctor, target.ID, model.CaseStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusClosed, c.Status)

	c, err = f.svc.SetStatus(ctx, f.doctor, target.ID, model.CaseStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusOpen, c.Status)

	// setting the current status again succeeds
	c, err = f.svc.SetStatus(ctx, f.doctor, target.ID, model.CaseStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusOpen, c.Status)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetStatus(context.Background(), f.doctor, uuid.New(), model.CaseStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.Code(err))
}

func TestSetStatus_MissingCase(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetStatus(context.Background(), f.doctor, uuid.New(), model.CaseStatusClosed)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.Code(err))
}

func TestSetNotes_OverwriteIncludingEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assigned, err := f.svc.ListForDoctor(ctx, f.doctor, f.doctor.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, assigned)
	target := assigned[0]

	c, err := f.svc.SetNotes(ctx, f.doctor, target.ID, "  Follow-up needed  ")
	require.NoError(t, err)
	assert.Equal(t, "Follow-up needed", c.DoctorNotes)

	c, err = f.svc.SetNotes(ctx, f.doctor, target.ID, "")
	require.NoError(t, err)
	assert.Empty(t, c.DoctorNotes)
}

func TestSetNotes_PatientForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetNotes(context.Background(), f.john, uuid.New(), "n")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

func TestListForPatient_Isolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	johns, err := f.svc.ListForPatient(ctx, f.john, f.john.UserID)
	require.NoError(t, err)
	require.Len(t, johns, 2)
	for _, c := range johns {
		assert.Equal(t, f.john.UserID, c.PatientID)
	}

	sarahs, err := f.svc.ListForPatient(ctx, f.sarah, f.sarah.UserID)
	require.NoError(t, err)
	require.Len(t, sarahs, 1)
	assert.Equal(t, "Headache and fatigue", sarahs[0].Title)

	// a patient cannot read another patient's list; a doctor can
	_, err = f.svc.ListForPatient(ctx, f.john, f.sarah.UserID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))

	viaDoctor, err := f.svc.ListForPatient(ctx, f.doctor, f.sarah.UserID)
	require.NoError(t, err)
	assert.Len(t, viaDoctor, 1)
}

func TestGet_PatientOwnsOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sarahs, err := f.svc.ListForPatient(ctx, f.sarah, f.sarah.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, sarahs)

	_, err = f.svc.Get(ctx, f.john, sarahs[0].ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

func TestAddAttachment_RecordsUploader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	johns, err := f.svc.ListForPatient(ctx, f.john, f.john.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, johns)
	target := johns[0]

	c, err := f.svc.AddAttachment(ctx, f.john, target.ID, &model.AddAttachmentRequest{
		Name: "ecg-report.pdf", Size: 48213, ContentType: "application/pdf",
	})
	require.NoError(t, err)
	require.Len(t, c.Attachments, 1)
	att := c.Attachments[0]
	assert.Equal(t, "ecg-report.pdf", att.Name)
	assert.Equal(t, int64(48213), att.Size)
	assert.Equal(t, "John Doe", att.UploadedBy)
	assert.Equal(t, model.RolePatient, att.UploadedByRole)
	assert.False(t, att.UploadedAt.IsZero())

	c, err = f.svc.AddAttachment(ctx, f.doctor, target.ID, &model.AddAttachmentRequest{
		Name: "lab-results.pdf", Size: 102, ContentType: "application/pdf",
	})
	require.NoError(t, err)
	require.Len(t, c.Attachments, 2)
	assert.Equal(t, model.RoleDoctor, c.Attachments[1].UploadedByRole)
}

func TestAddAttachment_OtherPatientForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	johns, err := f.svc.ListForPatient(ctx, f.john, f.john.UserID)
	require.NoError(t, err)
	require.NotEmpty(t, johns)

	_, err = f.svc.AddAttachment(ctx, f.sarah, johns[0].ID, &model.AddAttachmentRequest{
		Name: "x.pdf",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrForbidden, apperrors.Code(err))
}

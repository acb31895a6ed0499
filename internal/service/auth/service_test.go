package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/localstore"
	pkgauth "github.com/jidris-spec/patient360-health-dashboard/pkg/auth"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
)

func newTestService(t *testing.T) (*Service, *kv.MemoryBackend) {
	t.Helper()

	backend := kv.NewMemoryBackend()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, localstore.Seed(context.Background(), backend, hasher))

	svc := NewService(
		localstore.NewUserRepository(backend),
		localstore.NewSessionRepository(backend),
		pkgauth.NewJWTService("test-secret", time.Hour),
		hasher,
	)
	return svc, backend
}

func TestLogin_DemoPatient(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), "john@example.com", "patient123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RolePatient, resp.User.Role)
	assert.Equal(t, "John Doe", resp.User.Name)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), "AHMED@clinic.com", "doctor123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), "john@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, apperrors.ErrInvalidCredentials, apperrors.Code(err))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "patient123")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidCredentials, apperrors.Code(err))
}

func TestLogin_PersistsSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "john@example.com", "patient123")
	require.NoError(t, err)

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "john@example.com", session.Email)
	assert.Empty(t, session.PasswordHash)
}

func TestLogout_ClearsSessionAndRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "john@example.com", "patient123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RolePatient, claims.Role)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken))

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)

	_, err = svc.ValidateToken(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

func TestCurrentSession_CorruptRecordReadsAsLoggedOut(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	require.NoError(t, backend.Set(ctx, "authUser", []byte("corrupt{{")))

	session, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthorized, apperrors.Code(err))
}

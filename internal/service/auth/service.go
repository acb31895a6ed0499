package auth

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository"
	pkgauth "github.com/jidris-spec/patient360-health-dashboard/pkg/auth"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
)

const revokedCleanupInterval = 10 * time.Minute

// Service is the authentication gate. It authenticates against the user
// store, owns the persisted session record and validates the tokens every
// protected operation presents.
type Service struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tokens   pkgauth.TokenService
	hasher   security.PasswordHasher
	revoked  *cache.Cache
}

func NewService(users repository.UserRepository, sessions repository.SessionRepository,
	tokens pkgauth.TokenService, hasher security.PasswordHasher) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		hasher:   hasher,
		revoked:  cache.New(tokens.Expiry(), revokedCleanupInterval),
	}
}

// Login authenticates email+password and persists the session record.
// Every failure is InvalidCredentials and leaves prior state untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.sessions.Save(ctx, user.Sanitized()); err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user logged in")

	return &model.TokenResponse{
		AccessToken: token,
		User:        user.Sanitized(),
	}, nil
}

// Logout clears the persisted session and revokes the presented token for
// the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token != "" {
		s.revoked.Set(token, struct{}{}, cache.DefaultExpiration)
	}
	return s.sessions.Clear(ctx)
}

// CurrentSession restores the persisted session record. A corrupt record
// has already been discarded by the repository; it reads as logged out.
func (s *Service) CurrentSession(ctx context.Context) (*model.User, error) {
	user, err := s.sessions.Load(ctx)
	if err != nil {
		if apperrors.Code(err) == apperrors.ErrCorruptState {
			log.Warn().Err(err).Msg("discarded corrupt session record")
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken checks signature, expiry and the revocation list.
func (s *Service) ValidateToken(_ context.Context, token string) (*pkgauth.Claims, error) {
	if _, found := s.revoked.Get(token); found {
		return nil, apperrors.Unauthorized(nil)
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

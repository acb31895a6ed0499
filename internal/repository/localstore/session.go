package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

// SessionRepository persists the single active-session record under the
// authUser key.
type SessionRepository struct {
	mu      sync.Mutex
	backend kv.Backend
}

func NewSessionRepository(backend kv.Backend) *SessionRepository {
	return &SessionRepository{backend: backend}
}

func (r *SessionRepository) Save(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.backend.Set(ctx, keySession, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load returns the persisted session, or (nil, nil) when logged out. A
// malformed record is deleted and reported as CorruptState so the caller
// can treat it as logged out.
func (r *SessionRepository) Load(ctx context.Context) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := r.backend.Get(ctx, keySession)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(raw, &user); err != nil {
		if delErr := r.backend.Delete(ctx, keySession); delErr != nil {
			return nil, fmt.Errorf("failed to discard corrupt session: %w", delErr)
		}
		return nil, apperrors.CorruptState(keySession, err)
	}
	return &user, nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.Delete(ctx, keySession); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

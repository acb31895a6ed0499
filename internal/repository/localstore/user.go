package localstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

type UserRepository struct {
	mu      sync.Mutex
	backend kv.Backend
}

func NewUserRepository(backend kv.Backend) *UserRepository {
	return &UserRepository{backend: backend}
}

// Create appends the user. Email uniqueness is case-insensitive and checked
// under the repository lock so concurrent signups cannot race past the
// service-level check.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := loadCollection[model.User](ctx, r.backend, keyUsers)
	if err != nil {
		return err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.DuplicateEmail(user.Email)
		}
	}

	users = append(users, *user)
	return saveCollection(ctx, r.backend, keyUsers, users)
}

func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	users, err := loadCollection[model.User](ctx, r.backend, keyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := loadCollection[model.User](ctx, r.backend, keyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return loadCollection[model.User](ctx, r.backend, keyUsers)
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	users, err := loadCollection[model.User](ctx, r.backend, keyUsers)
	if err != nil {
		return nil, err
	}
	var out []model.User
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

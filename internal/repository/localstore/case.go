package localstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

type CaseRepository struct {
	mu      sync.Mutex
	backend kv.Backend
}

func NewCaseRepository(backend kv.Backend) *CaseRepository {
	return &CaseRepository{backend: backend}
}

func (r *CaseRepository) Create(ctx context.Context, c *model.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, err := loadCollection[model.Case](ctx, r.backend, keyCases)
	if err != nil {
		return err
	}
	cases = append(cases, *c)
	return saveCollection(ctx, r.backend, keyCases, cases)
}

func (r *CaseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Case, error) {
	cases, err := loadCollection[model.Case](ctx, r.backend, keyCases)
	if err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].ID == id {
			c := cases[i]
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("case", nil)
}

// Update replaces the stored case with the same id in place, preserving
// collection order.
func (r *CaseRepository) Update(ctx context.Context, c *model.Case) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cases, err := loadCollection[model.Case](ctx, r.backend, keyCases)
	if err != nil {
		return err
	}
	for i := range cases {
		if cases[i].ID == c.ID {
			cases[i] = *c
			return saveCollection(ctx, r.backend, keyCases, cases)
		}
	}
	return apperrors.NotFound("case", nil)
}

func (r *CaseRepository) List(ctx context.Context) ([]model.Case, error) {
	return loadCollection[model.Case](ctx, r.backend, keyCases)
}

func (r *CaseRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Case, error) {
	cases, err := loadCollection[model.Case](ctx, r.backend, keyCases)
	if err != nil {
		return nil, err
	}
	var out []model.Case
	for _, c := range cases {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CaseRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Case, error) {
	cases, err := loadCollection[model.Case](ctx, r.backend, keyCases)
	if err != nil {
		return nil, err
	}
	var out []model.Case
	for _, c := range cases {
		if c.DoctorID == doctorID {
			out = append(out, c)
		}
	}
	return out, nil
}

package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
)

// Service manages the user collection: patient self-registration, the
// doctor-only roster views and doctor creation. Users are never deleted.
type Service struct {
	users  repository.UserRepository
	cases  repository.CaseRepository
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, cases repository.CaseRepository,
	hasher security.PasswordHasher) *Service {
	return &Service{users: users, cases: cases, hasher: hasher}
}

// Register creates a patient account. Duplicate emails are rejected
// case-insensitively.
func (s *Service) Register(ctx context.Context, req *model.SignupRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	insuranceID := strings.TrimSpace(req.InsuranceID)

	if name == "" || email == "" || insuranceID == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email, insurance id and password are required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Role:         model.RolePatient,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		InsuranceID:  insuranceID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Msg("patient registered")

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// AddDoctor creates a doctor account. Only doctors may call it.
func (s *Service) AddDoctor(ctx context.Context, actor model.Actor, req *model.AddDoctorRequest) (*model.User, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can add doctors")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	specialty := strings.TrimSpace(req.Specialty)

	if name == "" || email == "" || specialty == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email, specialty and password are required")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Role:         model.RoleDoctor,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Specialty:    specialty,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Str("specialty", user.Specialty).Msg("doctor added")

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ListPatients is a doctor-only view of all registered patients.
func (s *Service) ListPatients(ctx context.Context, actor model.Actor) ([]model.User, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can list patients")
	}

	patients, err := s.users.ListByRole(ctx, model.RolePatient)
	if err != nil {
		return nil, err
	}
	return sanitizeAll(patients), nil
}

// ListDoctors is a doctor-only roster with per-doctor case counts.
func (s *Service) ListDoctors(ctx context.Context, actor model.Actor) ([]model.DoctorRoster, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can view the doctor roster")
	}

	doctors, err := s.users.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, err
	}

	roster := make([]model.DoctorRoster, 0, len(doctors))
	for _, doc := range doctors {
		assigned, err := s.cases.ListByDoctor(ctx, doc.ID)
		if err != nil {
			return nil, err
		}

		entry := model.DoctorRoster{Doctor: doc.Sanitized(), Total: len(assigned)}
		for _, c := range assigned {
			switch c.Status {
			case model.CaseStatusOpen:
				entry.Open++
			case model.CaseStatusInReview:
				entry.InReview++
			case model.CaseStatusClosed:
				entry.Closed++
			}
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func sanitizeAll(users []model.User) []model.User {
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	return out
}

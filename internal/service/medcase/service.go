// Package medcase implements the medical case lifecycle: patients open
// cases against the default doctor, doctors move status and keep notes.
package medcase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository"
	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

type Service struct {
	cases           repository.CaseRepository
	users           repository.UserRepository
	defaultDoctorID uuid.UUID
}

func NewService(cases repository.CaseRepository, users repository.UserRepository,
	defaultDoctorID uuid.UUID) *Service {
	return &Service{cases: cases, users: users, defaultDoctorID: defaultDoctorID}
}

// Create opens a case for the calling patient, assigned to the default
// doctor with status open.
func (s *Service) Create(ctx context.Context, actor model.Actor, req *model.CreateCaseRequest) (*model.Case, error) {
	if !actor.IsPatient() {
		return nil, apperrors.Forbidden("only patients can open cases")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.Validation("case title is required")
	}

	c := &model.Case{
		ID:        uuid.New(),
		PatientID: actor.UserID,
		DoctorID:  s.defaultDoctorID,
		Title:     title,
		Status:    model.CaseStatusOpen,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().Str("case_id", c.ID.String()).Str("patient_id", c.PatientID.String()).Msg("case opened")
	return c, nil
}

// SetStatus overwrites the case status. Doctors only. Any valid status may
// replace any other; there is no transition graph.
func (s *Service) SetStatus(ctx context.Context, actor model.Actor, caseID uuid.UUID, status model.CaseStatus) (*model.Case, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can update case status")
	}
	if !status.Valid() {
		return nil, apperrors.Validation("unknown case status")
	}

	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	c.Status = status
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetNotes replaces the doctor notes entirely with the trimmed text.
// Overwriting with an empty string is allowed.
func (s *Service) SetNotes(ctx context.Context, actor model.Actor, caseID uuid.UUID, notes string) (*model.Case, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can update case notes")
	}

	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	c.DoctorNotes = strings.TrimSpace(notes)
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddAttachment appends attachment metadata to the case. Doctors and the
// owning patient may attach; the uploader's name and role are recorded.
func (s *Service) AddAttachment(ctx context.Context, actor model.Actor, caseID uuid.UUID, req *model.AddAttachmentRequest) (*model.Case, error) {
	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}

	if !actor.IsDoctor() && c.PatientID != actor.UserID {
		return nil, apperrors.Forbidden("only the case owner or a doctor can attach files")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validation("attachment name is required")
	}

	uploader, err := s.users.Get(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	c.Attachments = append(c.Attachments, model.Attachment{
		ID:             uuid.New(),
		Name:           name,
		Size:           req.Size,
		ContentType:    req.ContentType,
		UploadedBy:     uploader.Name,
		UploadedByRole: actor.Role,
		UploadedAt:     time.Now().UTC(),
	})

	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListForPatient returns the patient's cases in insertion order. Patients
// may only list their own; doctors may list any patient's.
func (s *Service) ListForPatient(ctx context.Context, actor model.Actor, patientID uuid.UUID) ([]model.Case, error) {
	if actor.IsPatient() && actor.UserID != patientID {
		return nil, apperrors.Forbidden("patients can only list their own cases")
	}
	return s.cases.ListByPatient(ctx, patientID)
}

// ListForDoctor returns the cases assigned to a doctor, insertion order.
func (s *Service) ListForDoctor(ctx context.Context, actor model.Actor, doctorID uuid.UUID) ([]model.Case, error) {
	if !actor.IsDoctor() {
		return nil, apperrors.Forbidden("only doctors can list assigned cases")
	}
	return s.cases.ListByDoctor(ctx, doctorID)
}

// Get returns a single case. Patients may only read their own.
func (s *Service) Get(ctx context.Context, actor model.Actor, caseID uuid.UUID) (*model.Case, error) {
	c, err := s.cases.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if actor.IsPatient() && c.PatientID != actor.UserID {
		return nil, apperrors.Forbidden("patients can only view their own cases")
	}
	return c, nil
}

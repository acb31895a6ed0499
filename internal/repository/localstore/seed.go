package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
)

// Demo identities use fixed ids so seeded associations survive restarts.
var (
	demoPatientJohnID  = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	demoPatientSarahID = uuid.MustParse("22222222-2222-4222-8222-222222222222")
	demoDoctorAhmedID  = uuid.MustParse("33333333-3333-4333-8333-333333333333")

	demoCase1ID = uuid.MustParse("44444444-4444-4444-8444-444444444444")
	demoCase2ID = uuid.MustParse("55555555-5555-4555-8555-555555555555")
	demoCase3ID = uuid.MustParse("66666666-6666-4666-8666-666666666666")

	demoAppointment1ID = uuid.MustParse("77777777-7777-4777-8777-777777777777")
)

// DemoDoctorEmail is the seeded default doctor every new case and
// appointment is assigned to.
const DemoDoctorEmail = "ahmed@clinic.com"

// Seed writes the demo collections for any well-known key that is absent.
// Existing collections are never touched.
func Seed(ctx context.Context, backend kv.Backend, hasher security.PasswordHasher) error {
	if err := seedUsers(ctx, backend, hasher); err != nil {
		return err
	}
	if err := seedCases(ctx, backend); err != nil {
		return err
	}
	return seedAppointments(ctx, backend)
}

func seedUsers(ctx context.Context, backend kv.Backend, hasher security.PasswordHasher) error {
	raw, err := backend.Get(ctx, keyUsers)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", keyUsers, err)
	}
	if raw != nil {
		return nil
	}

	patientHash, err := hasher.Hash("patient123")
	if err != nil {
		return fmt.Errorf("failed to hash demo patient password: %w", err)
	}
	doctorHash, err := hasher.Hash("doctor123")
	if err != nil {
		return fmt.Errorf("failed to hash demo doctor password: %w", err)
	}

	users := []model.User{
		{
			ID:           demoPatientJohnID,
			Role:         model.RolePatient,
			Name:         "John Doe",
			Email:        "john@example.com",
			PasswordHash: patientHash,
			InsuranceID:  "INS-RO-001",
		},
		{
			ID:           demoPatientSarahID,
			Role:         model.RolePatient,
			Name:         "Sarah Ali",
			Email:        "sarah@example.com",
			PasswordHash: patientHash,
			InsuranceID:  "INS-RO-002",
		},
		{
			ID:           demoDoctorAhmedID,
			Role:         model.RoleDoctor,
			Name:         "Dr. Ahmed Musa",
			Email:        DemoDoctorEmail,
			PasswordHash: doctorHash,
			Specialty:    "Cardiology",
		},
	}

	log.Info().Int("count", len(users)).Msg("seeding demo users")
	return saveCollection(ctx, backend, keyUsers, users)
}

func seedCases(ctx context.Context, backend kv.Backend) error {
	raw, err := backend.Get(ctx, keyCases)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", keyCases, err)
	}
	if raw != nil {
		return nil
	}

	now := time.Now().UTC()
	cases := []model.Case{
		{
			ID:        demoCase1ID,
			PatientID: demoPatientJohnID,
			DoctorID:  demoDoctorAhmedID,
			Title:     "Chest pain and shortness of breath",
			Status:    model.CaseStatusOpen,
			CreatedAt: now,
		},
		{
			ID:        demoCase2ID,
			PatientID: demoPatientJohnID,
			DoctorID:  demoDoctorAhmedID,
			Title:     "Routine follow-up check",
			Status:    model.CaseStatusInReview,
			CreatedAt: now,
		},
		{
			ID:        demoCase3ID,
			PatientID: demoPatientSarahID,
			DoctorID:  demoDoctorAhmedID,
			Title:     "Headache and fatigue",
			Status:    model.CaseStatusClosed,
			CreatedAt: now,
		},
	}

	log.Info().Int("count", len(cases)).Msg("seeding demo cases")
	return saveCollection(ctx, backend, keyCases, cases)
}

func seedAppointments(ctx context.Context, backend kv.Backend) error {
	raw, err := backend.Get(ctx, keyAppointments)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", keyAppointments, err)
	}
	if raw != nil {
		return nil
	}

	now := time.Now().UTC()
	appointments := []model.Appointment{
		{
			ID:        demoAppointment1ID,
			PatientID: demoPatientJohnID,
			DoctorID:  demoDoctorAhmedID,
			DateTime:  now,
			Reason:    "Follow-up on chest pain",
			Status:    model.AppointmentStatusScheduled,
			CreatedAt: now,
		},
	}

	log.Info().Int("count", len(appointments)).Msg("seeding demo appointments")
	return saveCollection(ctx, backend, keyAppointments, appointments)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jidris-spec/patient360-health-dashboard/internal/config"
	apptHandler "github.com/jidris-spec/patient360-health-dashboard/internal/handler/appointment"
	authHandler "github.com/jidris-spec/patient360-health-dashboard/internal/handler/auth"
	caseHandler "github.com/jidris-spec/patient360-health-dashboard/internal/handler/medcase"
	userHandler "github.com/jidris-spec/patient360-health-dashboard/internal/handler/user"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/kv"
	"github.com/jidris-spec/patient360-health-dashboard/internal/repository/localstore"
	"github.com/jidris-spec/patient360-health-dashboard/internal/router"
	appointmentService "github.com/jidris-spec/patient360-health-dashboard/internal/service/appointment"
	authService "github.com/jidris-spec/patient360-health-dashboard/internal/service/auth"
	medcaseService "github.com/jidris-spec/patient360-health-dashboard/internal/service/medcase"
	userService "github.com/jidris-spec/patient360-health-dashboard/internal/service/user"
	pkgauth "github.com/jidris-spec/patient360-health-dashboard/pkg/auth"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/logger"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/security"
	"github.com/jidris-spec/patient360-health-dashboard/pkg/validator"
)

const bcryptCost = 12

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stdout,
	})
	log.Logger = *lg.Zerolog()

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	backend, closeBackend, err := openBackend(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage backend")
	}
	defer closeBackend()

	hasher := security.NewBcryptHasher(bcryptCost)

	ctx := context.Background()
	if err := localstore.Seed(ctx, backend, hasher); err != nil {
		log.Fatal().Err(err).Msg("failed to seed demo data")
	}

	userRepo := localstore.NewUserRepository(backend)
	caseRepo := localstore.NewCaseRepository(backend)
	appointmentRepo := localstore.NewAppointmentRepository(backend)
	sessionRepo := localstore.NewSessionRepository(backend)

	defaultDoctor, err := userRepo.GetByEmail(ctx, cfg.Clinic.DefaultDoctorEmail)
	if err != nil || defaultDoctor.Role != model.RoleDoctor {
		log.Fatal().Err(err).Str("email", cfg.Clinic.DefaultDoctorEmail).
			Msg("default doctor not found in user store")
	}

	tokenSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	authSvc := authService.NewService(userRepo, sessionRepo, tokenSvc, hasher)
	userSvc := userService.NewService(userRepo, caseRepo, hasher)
	caseSvc := medcaseService.NewService(caseRepo, userRepo, defaultDoctor.ID)
	apptSvc := appointmentService.NewService(appointmentRepo, defaultDoctor.ID)

	authMW := middleware.NewAuthMiddleware(authSvc)

	r := router.New(authMW, router.Config{
		RateLimitRPS:   rateLimitRPS(cfg),
		RateLimitBurst: cfg.RateLimit.Burst,
		CORS:           middleware.DefaultCORSConfig(),
		ReleaseMode:    true,
	},
		authHandler.NewHandler(authSvc, userSvc),
		userHandler.NewHandler(userSvc),
		caseHandler.NewHandler(caseSvc),
		apptHandler.NewHandler(apptSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("storage", cfg.Storage.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func rateLimitRPS(cfg *config.Config) float64 {
	if !cfg.RateLimit.Enabled {
		return 0
	}
	return cfg.RateLimit.RPS
}

func openBackend(cfg config.StorageConfig) (kv.Backend, func(), error) {
	switch cfg.Driver {
	case config.StorageDriverSQLite:
		backend, err := kv.NewSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {
			if err := backend.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close sqlite backend")
			}
		}, nil
	case config.StorageDriverMemory:
		return kv.NewMemoryBackend(), func() {}, nil
	default:
		backend, err := kv.NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() {}, nil
	}
}

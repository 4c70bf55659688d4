package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/clinicore/clinic-admin/internal/config"
	"github.com/clinicore/clinic-admin/internal/handler"
	appointmentHandler "github.com/clinicore/clinic-admin/internal/handler/appointment"
	authHandler "github.com/clinicore/clinic-admin/internal/handler/auth"
	billingHandler "github.com/clinicore/clinic-admin/internal/handler/billing"
	dashboardHandler "github.com/clinicore/clinic-admin/internal/handler/dashboard"
	healthHandler "github.com/clinicore/clinic-admin/internal/handler/health"
	labresultHandler "github.com/clinicore/clinic-admin/internal/handler/labresult"
	medicalrecordHandler "github.com/clinicore/clinic-admin/internal/handler/medicalrecord"
	patientHandler "github.com/clinicore/clinic-admin/internal/handler/patient"
	prescriptionHandler "github.com/clinicore/clinic-admin/internal/handler/prescription"
	"github.com/clinicore/clinic-admin/internal/middleware"
	"github.com/clinicore/clinic-admin/internal/repository/postgres"
	"github.com/clinicore/clinic-admin/internal/router"
	"github.com/clinicore/clinic-admin/internal/session"
	appointmentService "github.com/clinicore/clinic-admin/internal/service/appointment"
	authService "github.com/clinicore/clinic-admin/internal/service/auth"
	billingService "github.com/clinicore/clinic-admin/internal/service/billing"
	dashboardService "github.com/clinicore/clinic-admin/internal/service/dashboard"
	labresultService "github.com/clinicore/clinic-admin/internal/service/labresult"
	medicalrecordService "github.com/clinicore/clinic-admin/internal/service/medicalrecord"
	patientService "github.com/clinicore/clinic-admin/internal/service/patient"
	prescriptionService "github.com/clinicore/clinic-admin/internal/service/prescription"
	"github.com/clinicore/clinic-admin/pkg/logger"
	"github.com/clinicore/clinic-admin/pkg/security"
	"github.com/clinicore/clinic-admin/pkg/token"
	"github.com/clinicore/clinic-admin/pkg/validator"
)

func main() {
	logger.Setup(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterCustom(); err != nil {
		log.Fatal().Err(err).Msg("failed to register form validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Session storage: Redis in production, in-process memory otherwise.
	var redisClient *redis.Client
	var sessionStore session.Store
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse redis URL")
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		sessionStore = session.NewRedisStore(redisClient)
	} else {
		sessionStore = session.NewMemoryStore(10 * time.Minute)
	}
	sessions := session.NewManager(sessionStore, cfg.Session.CookieName, cfg.Session.TTL())

	// Repositories
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	medicalRecordRepo := postgres.NewMedicalRecordRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	labResultRepo := postgres.NewLabResultRepository(db)
	billingRepo := postgres.NewBillingRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)

	// Services
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	rememberIssuer := token.NewIssuer(cfg.Auth.RememberSecret, cfg.Auth.RememberTTL())
	authSvc := authService.NewService(doctorRepo, hasher, rememberIssuer)
	patientSvc := patientService.NewService(patientRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	medicalRecordSvc := medicalrecordService.NewService(medicalRecordRepo)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo)
	labResultSvc := labresultService.NewService(labResultRepo)
	billingSvc := billingService.NewService(billingRepo)
	dashboardSvc := dashboardService.NewService(dashboardRepo)

	// Handlers
	base := handler.NewBase(sessions)
	authH := authHandler.NewHandler(authSvc, dashboardSvc, base)
	dashboardH := dashboardHandler.NewHandler(dashboardSvc, authSvc, base)
	patientH := patientHandler.NewHandler(patientSvc, base)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, patientSvc, base)
	medicalRecordH := medicalrecordHandler.NewHandler(medicalRecordSvc, patientSvc, base)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc, patientSvc, base)
	labResultH := labresultHandler.NewHandler(labResultSvc, patientSvc, base)
	billingH := billingHandler.NewHandler(billingSvc, patientSvc, appointmentSvc, base)
	healthH := healthHandler.NewHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(sessions, authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		dashboardH,
		patientH,
		appointmentH,
		medicalRecordH,
		prescriptionH,
		labResultH,
		billingH,
		healthH,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			MetricsPrefix: cfg.Metrics.Prefix,
			TemplateGlob:  cfg.Server.TemplateGlob,
			ReleaseMode:   cfg.Server.ReleaseMode,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	log.Info().Msg("server exited properly")
}

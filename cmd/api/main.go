package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/campus-suite/records-portal/internal/api/http"
	"github.com/campus-suite/records-portal/internal/api/http/handlers"
	"github.com/campus-suite/records-portal/internal/auth"
	"github.com/campus-suite/records-portal/internal/config"
	"github.com/campus-suite/records-portal/internal/events"
	"github.com/campus-suite/records-portal/internal/mailer"
	"github.com/campus-suite/records-portal/internal/observability"
	"github.com/campus-suite/records-portal/internal/persistence"
	"github.com/campus-suite/records-portal/internal/repository"
	"github.com/campus-suite/records-portal/internal/service"
	"github.com/campus-suite/records-portal/internal/storage"
	"github.com/campus-suite/records-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}

	smtp, err := mailer.NewSMTP(cfg.SMTP)
	if err != nil {
		logger.Fatal("failed to init mailer", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	pool := pg.PoolHandle()
	requestRepo := repository.NewRequestRepository(pool)
	proposalRepo := repository.NewProposalRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Mailer:      smtp,
		Dispatcher:  dispatcher,
		Logger:      logger,
		Metrics:     metrics,
	})
	proposalService := service.NewProposalService(store, proposalRepo, dispatcher, logger)
	authService := service.NewAuthService(cfg.Auth, staffRepo)
	statsService := service.NewStatsService(requestRepo, redis.Client, logger)

	worker.StartAuditRecorder(service.NewAuditRecorder(auditRepo, dispatcher, logger))

	staffGate := auth.NewStaffGate(authService.TokenManager(), staffRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(authService),
		Requests:  handlers.NewRequestsHandler(requestService),
		Proposals: handlers.NewProposalsHandler(proposalService),
		Stats:     handlers.NewStatsHandler(statsService),
		StaffGate: staffGate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

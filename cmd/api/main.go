// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/copperline/copperline/internal/activity"
	"github.com/copperline/copperline/internal/admin"
	"github.com/copperline/copperline/internal/auth"
	"github.com/copperline/copperline/internal/client"
	"github.com/copperline/copperline/internal/config"
	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/dashboard"
	"github.com/copperline/copperline/internal/health"
	"github.com/copperline/copperline/internal/invoice"
	"github.com/copperline/copperline/internal/middleware"
	"github.com/copperline/copperline/internal/project"
	"github.com/copperline/copperline/internal/server"
	"github.com/copperline/copperline/internal/tenant"
	"github.com/copperline/copperline/internal/user"
)

const drainDelay = 5 * time.Second

func main() {
	//nolint:errcheck // .env is optional outside development
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return err
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exit

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close() //nolint:errcheck // process exit

	tokenManager, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		return err
	}

	tenantRepo := tenant.NewRepository(db.DB)
	userRepo := user.NewRepository(db.DB)
	clientRepo := client.NewRepository(db.DB)
	projectRepo := project.NewRepository(db.DB)
	invoiceRepo := invoice.NewRepository(db.DB)
	activityRepo := activity.NewRepository(db.DB)
	dashboardRepo := dashboard.NewRepository(db.DB)

	resolver := tenant.NewResolver(tenantRepo, cfg.Tenant.OperatorKey)
	activitySvc := activity.NewService(activityRepo)

	directory := user.NewDirectory(userRepo,
		func(ctx context.Context, tenantID int64) (string, error) {
			t, err := tenantRepo.GetByID(ctx, tenantID)
			if err != nil {
				return "", err
			}
			return t.Key, nil
		})

	authSvc := auth.NewService(tokenManager, directory, rdb.Client, activitySvc)
	tenantSvc := tenant.NewService(tenantRepo)
	userSvc := user.NewService(userRepo)
	clientSvc := client.NewService(clientRepo, activitySvc)
	projectSvc := project.NewService(projectRepo, clientRepo, activitySvc)
	invoiceSvc := invoice.NewService(invoiceRepo, clientRepo, activitySvc)
	dashboardSvc := dashboard.NewService(dashboardRepo, activitySvc)

	authHandler := auth.NewHandler(authSvc)
	tenantHandler := tenant.NewHandler(tenantSvc)
	userHandler := user.NewHandler(userSvc, resolver)
	clientHandler := client.NewHandler(clientSvc, resolver)
	projectHandler := project.NewHandler(projectSvc, resolver)
	invoiceHandler := invoice.NewHandler(invoiceSvc, resolver)
	activityHandler := activity.NewHandler(activitySvc, resolver)
	dashboardHandler := dashboard.NewHandler(dashboardSvc, resolver)
	adminHandler := admin.NewHandler(db, rdb.Client)
	healthHandler := health.NewHandler(db, rdb)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	metrics := middleware.NewHTTPMetrics()

	globalLimiter := middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(cfg.RateLimit.Requests, cfg.RateLimit.Burst),
		// Per-IP limiting with fail-open: an unreachable redis must not
		// take down read traffic.
		KeyFunc:  middleware.KeyByIP,
		FailOpen: true,
	})

	loginLimiter := middleware.NewRateLimiter(rdb.Client, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.LoginRequests,
			cfg.RateLimit.LoginBurst,
		),
		KeyFunc: middleware.KeyByIP,
		// Fail closed on login: without the shared counter a credential
		// stuffing run would go unthrottled.
		FailOpen: false,
	})

	router := srv.Router()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(metrics.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(globalLimiter.Handler)

	healthHandler.RegisterRoutes(router)
	router.Method("GET", "/metrics", promhttp.Handler())

	authenticator := middleware.Authenticator(authSvc)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimiter.Handler)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			tenantHandler.RegisterRoutes(r, cfg.Tenant.OperatorKey)
			userHandler.RegisterRoutes(r)
			clientHandler.RegisterRoutes(r)
			projectHandler.RegisterRoutes(r)
			invoiceHandler.RegisterRoutes(r)
			activityHandler.RegisterRoutes(r)
			dashboardHandler.RegisterRoutes(r)
			adminHandler.RegisterRoutes(r, cfg.Tenant.OperatorKey)
		})
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("service started",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

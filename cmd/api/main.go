// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/site-atlas/internal/admin"
	"github.com/carterperez-dev/site-atlas/internal/config"
	"github.com/carterperez-dev/site-atlas/internal/core"
	"github.com/carterperez-dev/site-atlas/internal/customer"
	"github.com/carterperez-dev/site-atlas/internal/health"
	"github.com/carterperez-dev/site-atlas/internal/job"
	"github.com/carterperez-dev/site-atlas/internal/middleware"
	"github.com/carterperez-dev/site-atlas/internal/seed"
	"github.com/carterperez-dev/site-atlas/internal/server"
	"github.com/carterperez-dev/site-atlas/internal/site"
	"github.com/carterperez-dev/site-atlas/internal/sitequery"
	"github.com/carterperez-dev/site-atlas/internal/store"
	"github.com/carterperez-dev/site-atlas/internal/trash"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	seedData := flag.Bool("seed", false, "load demo data into an empty store")
	flag.Parse()

	if err := run(*configPath, *seedData); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string, seedData bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, syncLogs := core.NewLogger(cfg.Log)
	slog.SetDefault(logger)
	defer func() { _ = syncLogs() }()

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	st := store.New(db.DB)

	seeded, err := seed.Bootstrap(ctx, st, seed.Options{
		Seed:       seedData || cfg.Atlas.Seed,
		Categories: cfg.Atlas.JobCategories,
	})
	if err != nil {
		return err
	}
	logger.Info("schema ready", "seeded", seeded)

	redis, err := core.NewRedis(ctx, cfg.Redis, cfg.App.Name)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	trashSvc := trash.NewService(st)
	trashHandler := trash.NewHandler(trashSvc)

	jobSvc := job.NewService(st, trashSvc, cfg.Atlas.JobCategories)
	jobHandler := job.NewHandler(jobSvc)

	siteSvc := site.NewService(st, trashSvc)
	siteHandler := site.NewHandler(siteSvc, jobSvc)

	customerSvc := customer.NewService(st, trashSvc)
	customerHandler := customer.NewHandler(customerSvc)

	querySvc := sitequery.NewService(st.Sites, cfg.Atlas.DefaultRadiusKm)
	queryHandler := sitequery.NewHandler(querySvc, cfg.Atlas.MapTilerKey)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counts:     st.Counts,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Name: "global",
			Limit: middleware.Per(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Name: "writes",
			Limit: middleware.Per(
				cfg.RateLimit.WriteRequests,
				cfg.RateLimit.WriteBurst,
				cfg.RateLimit.Window,
			),
			KeyFunc:    middleware.KeyByIPAndEndpoint,
			BypassFunc: middleware.ReadOnly,
			FailOpen:   true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	router.Route("/v1", func(r chi.Router) {
		customerHandler.RegisterRoutes(r, siteHandler.CreateForCustomer)
		siteHandler.RegisterRoutes(r, queryHandler.Search)
		jobHandler.RegisterRoutes(r)
		queryHandler.RegisterRoutes(r)
		trashHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

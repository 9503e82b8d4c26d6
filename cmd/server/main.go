package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cx-tal-miterani/airline-booking/internal/auth"
	"github.com/cx-tal-miterani/airline-booking/internal/booking"
	"github.com/cx-tal-miterani/airline-booking/internal/config"
	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/handlers"
	"github.com/cx-tal-miterani/airline-booking/internal/idempotency"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/metrics"
	"github.com/cx-tal-miterani/airline-booking/internal/models"
	"github.com/cx-tal-miterani/airline-booking/internal/router"
	"github.com/cx-tal-miterani/airline-booking/internal/service"
	"github.com/cx-tal-miterani/airline-booking/internal/websocket"
	"github.com/cx-tal-miterani/airline-booking/internal/workflows"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.temporal.io/sdk/client"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres: pgx for the booking path, gorm for the catalog
	pool, err := database.NewPool(ctx, cfg.Postgres.DSN(), cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	gormDB, err := database.NewGorm(cfg.Postgres.DSN())
	if err != nil {
		log.Fatal("failed to open gorm", "error", err)
	}

	repo := database.NewRepository(pool)
	catalog := database.NewCatalogRepository(gormDB)
	users := database.NewUserRepository(gormDB)

	// Redis for idempotent order submission
	redisClient, err := idempotency.NewRedisClient(ctx, idempotency.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	// Temporal client for the post-commit workflow
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("failed to create temporal client", "error", err)
	}
	defer temporalClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry, "airline")

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(users, tokens)

	if cfg.Auth.AdminEmail != "" {
		admin, err := authService.EnsureAdmin(ctx, models.Credentials{
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
		})
		if err != nil {
			log.Fatal("failed to ensure admin account", "error", err)
		}
		log.Info("admin account ready", "user_id", admin.ID, "email", admin.Email)
	}

	// Initialize services
	orders := service.NewOrderService(service.OrderDeps{
		Placer:       booking.NewOrderManager(repo),
		Orders:       repo,
		Availability: booking.NewProjector(repo),
		Notifier:     hub,
		Starter:      workflows.NewStarter(temporalClient, cfg.Temporal.TaskQueue),
		Metrics:      m,
		Log:          log,
	})

	// Initialize handlers
	h := handlers.NewHandler(handlers.Deps{
		Catalog: service.NewCatalogService(catalog),
		Flights: service.NewFlightService(repo, booking.NewProjector(repo)),
		Orders:  orders,
		Auth:    authService,
		Seats:   hub,
		Log:     log,
	})

	r := router.SetupRouter(h, router.Options{
		Tokens:        tokens,
		Idempotency:   idempotency.Middleware(idempotency.NewRedisStore(redisClient, cfg.App.Name), cfg.Redis.IdempotencyTTL, log),
		Metrics:       m,
		Gatherer:      registry,
		AllowedOrigin: cfg.HTTP.AllowedOrigin,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("api server starting", "port", cfg.HTTP.Port, "temporal", cfg.Temporal.Host)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

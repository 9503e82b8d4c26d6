package main

import (
	"context"

	"github.com/cx-tal-miterani/airline-booking/internal/activities"
	"github.com/cx-tal-miterani/airline-booking/internal/audit"
	"github.com/cx-tal-miterani/airline-booking/internal/config"
	"github.com/cx-tal-miterani/airline-booking/internal/database"
	"github.com/cx-tal-miterani/airline-booking/internal/events"
	"github.com/cx-tal-miterani/airline-booking/internal/logger"
	"github.com/cx-tal-miterani/airline-booking/internal/workflows"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Connect to database
	log.Info("connecting to database")
	pool, err := database.NewPool(ctx, cfg.Postgres.DSN(), cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	repo := database.NewRepository(pool)

	// Kafka producer for order events
	producer := events.NewProducer(events.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	// Mongo audit trail
	mongoClient, err := audit.NewMongoClient(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal("failed to connect to mongo", "error", err)
	}
	defer mongoClient.Disconnect(context.Background())

	recorder := audit.NewRecorder(mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
	if err := recorder.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create audit indexes", "error", err)
	}

	// Connect to Temporal
	log.Info("connecting to temporal", "host", cfg.Temporal.Host)
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.Host,
		Namespace: cfg.Temporal.Namespace,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("failed to connect to temporal", "error", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.OrderPlacedWorkflow)

	acts := activities.NewActivities(repo, producer, recorder)
	w.RegisterActivityWithOptions(acts.LoadOrder, activity.RegisterOptions{Name: activities.LoadOrderName})
	w.RegisterActivityWithOptions(acts.PublishOrderPlaced, activity.RegisterOptions{Name: activities.PublishOrderPlacedName})
	w.RegisterActivityWithOptions(acts.RecordOrderAudit, activity.RegisterOptions{Name: activities.RecordOrderAuditName})

	log.Info("starting temporal worker", "task_queue", cfg.Temporal.TaskQueue, "topic", producer.Topic())
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("worker failed", "error", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsportal/common/database"
	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/config"
	"jobsportal/services/jobs/internal/events"
	"jobsportal/services/jobs/internal/messaging"
	"jobsportal/services/jobs/internal/processor"
	chstore "jobsportal/services/jobs/internal/store/clickhouse"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newNATSConnection(cfg *config.Config, lc fx.Lifecycle) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("processing-service"),
		nats.RetryOnFailedConnect(true),
	}
	nc, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return nc.Drain()
		},
	})
	return nc, nil
}

func newStore(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (*chstore.Store, error) {
	db, err := database.New(context.Background(), database.Options{
		DSN:             cfg.ClickHouseDSN,
		MaxOpenConns:    cfg.ClickHouseMaxOpenConns,
		MaxIdleConns:    cfg.ClickHouseMaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouseConnMaxLife,
		Username:        cfg.ClickHouseUsername,
		Password:        cfg.ClickHousePassword,
		Database:        cfg.ClickHouseDatabase,
		MaxExecution:    cfg.RequestTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return chstore.New(db.Conn(), logger), nil
}

func newJobProcessor(logger *zap.Logger, store *chstore.Store, publisher messaging.Publisher) *processor.JobProcessor {
	return processor.NewJobProcessor(logger, store, publisher)
}

func registerTracing(cfg *config.Config, lc fx.Lifecycle) error {
	if cfg.OTELCollectorURL == "" {
		return nil
	}
	shutdown, err := telemetry.InitTracer(context.Background(), cfg.ServiceName+"-processing", cfg.OTELCollectorURL)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{OnStop: shutdown})
	return nil
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newNATSConnection,
			newStore,
			messaging.NewPublisher,
			newJobProcessor,
			events.NewHandler,
		),
		fx.Invoke(
			registerTracing,
			func(handler *events.Handler, lc fx.Lifecycle) error {
				return handler.RegisterSubscriptions(lc)
			},
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobsportal/common/cache"
	"jobsportal/common/cache/redis"
	"jobsportal/common/database"
	"jobsportal/common/telemetry"
	"jobsportal/services/jobs/internal/config"
	"jobsportal/services/jobs/internal/events"
	"jobsportal/services/jobs/internal/geo"
	"jobsportal/services/jobs/internal/search"
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
		nats.Name("search-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
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

func newCache(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) cache.Cache {
	c := redis.New(cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		KeyPrefix:     cfg.ServiceName,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Lookups fall through to ClickHouse while redis is down.
			if err := c.Ping(ctx); err != nil {
				logger.Warn("Redis unreachable at startup", zap.String("addr", cfg.RedisAddr), zap.Error(err))
				return nil
			}
			logger.Info("Connected to redis", zap.String("addr", cfg.RedisAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
	return c
}

func newResolver(store *chstore.Store, c cache.Cache, cfg *config.Config, logger *zap.Logger) *geo.Resolver {
	return geo.NewResolver(store, c, cfg.CacheTTL, logger)
}

func newSearcher(resolver *geo.Resolver, store *chstore.Store, cfg *config.Config, logger *zap.Logger) *search.Searcher {
	return search.NewSearcher(resolver, store, search.Options{
		MaxResults:  cfg.MaxResults,
		MilesRadius: cfg.MilesRadius,
		PageSize:    cfg.PageSize,
	}, logger)
}

func registerTracing(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) error {
	if cfg.OTELCollectorURL == "" {
		logger.Info("Tracing export disabled")
		return nil
	}
	shutdown, err := telemetry.InitTracer(context.Background(), cfg.ServiceName+"-search", cfg.OTELCollectorURL)
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
			newCache,
			newResolver,
			newSearcher,
			events.NewResponder,
		),
		fx.Invoke(
			registerTracing,
			func(responder *events.Responder, lc fx.Lifecycle) error {
				return responder.RegisterSubscriptions(lc)
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

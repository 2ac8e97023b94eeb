package main

import (
	"context"
	"log"
	"os"
	"time"

	"jobsportal/common/database"
	"jobsportal/common/database/schema"
	"jobsportal/common/database/schema/migrations"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func connectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dsn",
			Value:   "127.0.0.1:9000",
			Usage:   "ClickHouse address list",
			EnvVars: []string{"CLICKHOUSE_DSN"},
		},
		&cli.StringFlag{
			Name:    "database",
			Value:   "jobsportal",
			EnvVars: []string{"CLICKHOUSE_DATABASE"},
		},
		&cli.StringFlag{
			Name:    "username",
			Value:   "default",
			EnvVars: []string{"CLICKHOUSE_USERNAME"},
		},
		&cli.StringFlag{
			Name:    "password",
			EnvVars: []string{"CLICKHOUSE_PASSWORD"},
		},
	}
}

func withMigrator(logger *zap.Logger, fn func(ctx context.Context, m *schema.Migrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := c.Context

		db, err := database.New(ctx, database.Options{
			DSN:             c.String("dsn"),
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
			Username:        c.String("username"),
			Password:        c.String("password"),
			Database:        c.String("database"),
		}, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		migrator := schema.NewMigrator(db.Conn(), logger)
		if err := migrator.CreateMigrationsTable(ctx); err != nil {
			return err
		}

		return fn(ctx, migrator)
	}
}

func up(logger *zap.Logger) func(ctx context.Context, m *schema.Migrator) error {
	return func(ctx context.Context, m *schema.Migrator) error {
		applied, err := m.GetAppliedMigrations(ctx)
		if err != nil {
			return err
		}

		pending := schema.Pending(migrations.All, applied)
		if len(pending) == 0 {
			logger.Info("No pending migrations")
			return nil
		}

		for _, migration := range pending {
			if err := m.ApplyMigration(ctx, migration); err != nil {
				return err
			}
		}

		logger.Info("All migrations completed successfully", zap.Int("applied", len(pending)))
		return nil
	}
}

func down(logger *zap.Logger) func(ctx context.Context, m *schema.Migrator) error {
	return func(ctx context.Context, m *schema.Migrator) error {
		applied, err := m.GetAppliedMigrations(ctx)
		if err != nil {
			return err
		}

		latest, ok := schema.Latest(migrations.All, applied)
		if !ok {
			logger.Info("No migrations to roll back")
			return nil
		}

		return m.RollbackMigration(ctx, latest)
	}
}

func status(logger *zap.Logger) func(ctx context.Context, m *schema.Migrator) error {
	return func(ctx context.Context, m *schema.Migrator) error {
		applied, err := m.GetAppliedMigrations(ctx)
		if err != nil {
			return err
		}

		for _, migration := range migrations.All {
			if appliedAt, ok := applied[migration.Version]; ok {
				logger.Info("Migration applied",
					zap.Int("version", migration.Version),
					zap.String("description", migration.Description),
					zap.Time("applied_at", appliedAt))
				continue
			}
			logger.Info("Migration pending",
				zap.Int("version", migration.Version),
				zap.String("description", migration.Description))
		}
		return nil
	}
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	app := &cli.App{
		Name:  "migrate",
		Usage: "manage the jobs portal ClickHouse schema",
		Flags: connectFlags(),
		Commands: []*cli.Command{
			{
				Name:   "up",
				Usage:  "apply all pending migrations",
				Action: withMigrator(logger, up(logger)),
			},
			{
				Name:   "down",
				Usage:  "roll back the most recent migration",
				Action: withMigrator(logger, down(logger)),
			},
			{
				Name:   "status",
				Usage:  "list applied and pending migrations",
				Action: withMigrator(logger, status(logger)),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
}

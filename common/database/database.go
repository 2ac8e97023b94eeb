package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

type Options struct {
	// DSN is a comma separated list of host:port pairs, optionally followed
	// by query parameters which are ignored.
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
	MaxExecution    time.Duration
}

type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func parseAddrs(dsn string) []string {
	hosts := strings.Split(dsn, "?")[0]
	var addrs []string
	for _, h := range strings.Split(hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			addrs = append(addrs, h)
		}
	}
	return addrs
}

func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	addrs := parseAddrs(opts.DSN)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no clickhouse address in dsn %q", opts.DSN)
	}

	maxExecution := opts.MaxExecution
	if maxExecution == 0 {
		maxExecution = 60 * time.Second
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     addrs,
		Settings: clickhouse.Settings{
			"max_execution_time": int(maxExecution.Seconds()),
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("Connected to ClickHouse",
		zap.Strings("addrs", addrs),
		zap.String("database", opts.Database))

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}

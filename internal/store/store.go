package store

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"mediaid/internal/config"
	"mediaid/internal/logging"
	"mediaid/internal/services"
)

// Pool limits follow the single-writer, few-readers access pattern of the
// identification pipeline.
const (
	minConns = 1
	maxConns = 10
)

// Store wraps the PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, cfg config.Postgres, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = logging.NewNop()
	}
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "store", "open", "parse database config", err)
	}
	poolConfig.MinConns = minConns
	poolConfig.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, services.Wrap(services.ErrPersistence, "store", "open", "create connection pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, services.Wrap(services.ErrPersistence, "store", "open", "ping database", err)
	}

	log = log.With(logging.FieldComponent, "store")
	log.Info("database connection established",
		"host", cfg.Host,
		"database", cfg.Database,
		"min_conns", minConns,
		"max_conns", maxConns)
	return &Store{pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

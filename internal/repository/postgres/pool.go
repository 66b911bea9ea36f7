package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/infra"
)

// Store bundles the pgx pool behind the four logical repositories.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Connect opens the pool and verifies connectivity. The connect is the only
// fatal persistence path in the system, so it retries transient failures
// with backoff before giving up.
func Connect(ctx context.Context, cfg infra.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pc.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(5),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err := r.Do(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: database unreachable: %w", err)
	}

	return &Store{pool: pool, logger: logger.Named("postgres")}, nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

var bootstrapDDL = map[string]string{
	"agents": `CREATE TABLE IF NOT EXISTS agents (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		goal TEXT NOT NULL,
		capabilities TEXT[] NOT NULL DEFAULT '{}',
		schedule TEXT NULL,
		sandbox BOOLEAN NOT NULL DEFAULT TRUE,
		enabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	"approvals": `CREATE TABLE IF NOT EXISTS approvals (
		id UUID PRIMARY KEY,
		agent_id UUID NOT NULL,
		kind TEXT NOT NULL,
		draft_text TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		decided_at TIMESTAMPTZ NULL
	)`,
	"logs": `CREATE TABLE IF NOT EXISTS logs (
		id UUID PRIMARY KEY,
		agent_id UUID NULL,
		ts TIMESTAMPTZ NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		provider TEXT NULL,
		outcome TEXT NULL
	)`,
	"credential": `CREATE TABLE IF NOT EXISTS credential (
		id INT PRIMARY KEY CHECK (id = 1),
		provider TEXT NULL,
		api_key TEXT NULL,
		updated_at TIMESTAMPTZ NULL
	)`,
}

// Bootstrap creates the four tables idempotently. A failure on one table is
// logged and does not stop the others: the service starts degraded rather
// than crashing.
func (s *Store) Bootstrap(ctx context.Context) {
	for name, ddl := range bootstrapDDL {
		if _, err := s.pool.Exec(ctx, ddl); err != nil {
			s.logger.Error("table bootstrap failed",
				zap.String("table", name),
				zap.Error(err))
		}
	}

	// The credential table is a single slot; make sure the row exists.
	const seed = `INSERT INTO credential (id) VALUES (1) ON CONFLICT (id) DO NOTHING`
	if _, err := s.pool.Exec(ctx, seed); err != nil {
		s.logger.Error("credential slot seed failed", zap.Error(err))
	}
}

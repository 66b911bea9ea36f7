package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/personaliz/agentd/internal/domain"
)

const agentColumns = `id, name, role, goal, capabilities, schedule, sandbox, enabled, created_at`

// CreateAgent inserts a new agent definition.
func (s *Store) CreateAgent(ctx context.Context, a *domain.Agent) error {
	query := `INSERT INTO agents (id, name, role, goal, capabilities, schedule, sandbox, enabled, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.pool.Exec(ctx, query,
		a.ID, a.Name, a.Role, a.Goal, a.Capabilities, a.Schedule, a.Sandbox, a.Enabled, a.CreatedAt)
	if err != nil {
		return &domain.StoreError{Op: "create agent", Err: err}
	}
	return nil
}

// ListAgents returns all agents ordered by creation descending.
func (s *Store) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, &domain.StoreError{Op: "list agents", Err: err}
	}
	defer rows.Close()

	return scanAgents(rows)
}

// FindLatestByName returns the most recently created agent with that name.
// "Latest definition wins": names are not unique.
func (s *Store) FindLatestByName(ctx context.Context, name string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE name = $1
	          ORDER BY created_at DESC LIMIT 1`
	return s.queryOneAgent(ctx, query, name)
}

// FindLatestByCapability returns the most recently created agent whose
// capability list contains an element containing the given substring.
func (s *Store) FindLatestByCapability(ctx context.Context, substr string) (*domain.Agent, error) {
	// Containment check over the array elements, matching the registry's
	// substring policy.
	query := `SELECT ` + agentColumns + ` FROM agents
	          WHERE EXISTS (SELECT 1 FROM unnest(capabilities) c WHERE c LIKE '%' || $1 || '%')
	          ORDER BY created_at DESC LIMIT 1`
	return s.queryOneAgent(ctx, query, substr)
}

// ListScheduled returns enabled agents carrying a schedule expression; the
// scheduler reads this every tick.
func (s *Store) ListScheduled(ctx context.Context) ([]*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents
	          WHERE enabled AND schedule IS NOT NULL ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, &domain.StoreError{Op: "list scheduled agents", Err: err}
	}
	defer rows.Close()

	return scanAgents(rows)
}

// SetAgentEnabled flips the soft-lifecycle flag.
func (s *Store) SetAgentEnabled(ctx context.Context, id string, enabled bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE agents SET enabled = $1 WHERE id = $2`, enabled, id)
	if err != nil {
		return &domain.StoreError{Op: "update agent enabled", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "agent", ID: id}
	}
	return nil
}

func (s *Store) queryOneAgent(ctx context.Context, query string, arg any) (*domain.Agent, error) {
	row := s.pool.QueryRow(ctx, query, arg)

	a, err := scanAgent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "agent", ID: fmt.Sprint(arg)}
		}
		return nil, &domain.StoreError{Op: "find agent", Err: err}
	}
	return a, nil
}

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Role,
		&a.Goal,
		&a.Capabilities,
		&a.Schedule,
		&a.Sandbox,
		&a.Enabled,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAgents(rows pgx.Rows) ([]*domain.Agent, error) {
	// Empty slice so JSON listings render [] instead of null.
	results := make([]*domain.Agent, 0)
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "scan agent", Err: err}
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate agents", Err: err}
	}
	return results, nil
}

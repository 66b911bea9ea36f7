package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/personaliz/agentd/internal/domain"
)

const approvalColumns = `id, agent_id, kind, draft_text, status, created_at, decided_at`

// CreateApproval inserts a new pending ledger entry.
func (s *Store) CreateApproval(ctx context.Context, app *domain.Approval) error {
	query := `INSERT INTO approvals (id, agent_id, kind, draft_text, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.pool.Exec(ctx, query,
		app.ID, app.AgentID, app.Kind, app.DraftText, app.Status, app.CreatedAt)
	if err != nil {
		return &domain.StoreError{Op: "create approval", Err: err}
	}
	return nil
}

// GetApproval fetches one ledger entry by id.
func (s *Store) GetApproval(ctx context.Context, id string) (*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE id = $1`

	var app domain.Approval
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.AgentID, &app.Kind, &app.DraftText,
		&app.Status, &app.CreatedAt, &app.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "approval", ID: id}
		}
		return nil, &domain.StoreError{Op: "get approval", Err: err}
	}
	return &app, nil
}

// FindApprovals lists entries, optionally filtered by status, newest
// first. limit clamps like RecentLogs: 100 by default, 500 at most.
func (s *Store) FindApprovals(ctx context.Context, status domain.ApprovalStatus, limit int) ([]*domain.Approval, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `SELECT ` + approvalColumns + ` FROM approvals`

	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "find approvals", Err: err}
	}
	defer rows.Close()

	results := make([]*domain.Approval, 0)
	for rows.Next() {
		var app domain.Approval
		err := rows.Scan(
			&app.ID, &app.AgentID, &app.Kind, &app.DraftText,
			&app.Status, &app.CreatedAt, &app.DecidedAt,
		)
		if err != nil {
			return nil, &domain.StoreError{Op: "scan approval", Err: err}
		}
		results = append(results, &app)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate approvals", Err: err}
	}
	return results, nil
}

// DecideApproval atomically transitions a pending entry into a terminal
// state. The WHERE status = 'pending' condition prevents double decisions:
// a second decide on the same id finds no row and reports NotFoundError.
// RETURNING hands back the decided entry in one round trip.
func (s *Store) DecideApproval(ctx context.Context, id string, status domain.ApprovalStatus, decidedAt time.Time) (*domain.Approval, error) {
	query := `
		UPDATE approvals
		SET status = $1,
		    decided_at = $2
		WHERE id = $3 AND status = 'pending'
		RETURNING ` + approvalColumns

	var app domain.Approval
	err := s.pool.QueryRow(ctx, query, status, decidedAt, id).Scan(
		&app.ID, &app.AgentID, &app.Kind, &app.DraftText,
		&app.Status, &app.CreatedAt, &app.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the id is wrong or the decision was already made.
			return nil, &domain.NotFoundError{Entity: "pending approval", ID: id}
		}
		return nil, &domain.StoreError{Op: "decide approval", Err: err}
	}
	return &app, nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/personaliz/agentd/internal/domain"
)

// WriteBatch persists a batch of log entries with one multi-row INSERT.
func (s *Store) WriteBatch(ctx context.Context, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	const numFields = 7
	var placeholders strings.Builder
	vals := make([]any, 0, len(entries)*numFields)

	for i, e := range entries {
		p := i * numFields
		fmt.Fprintf(&placeholders, "($%d, $%d, $%d, $%d, $%d, $%d, $%d),",
			p+1, p+2, p+3, p+4, p+5, p+6, p+7)
		vals = append(vals,
			e.ID, e.AgentID, e.Timestamp, e.Level, e.Message,
			nullIfEmpty(e.Provider), nullIfEmpty(e.Outcome),
		)
	}

	query := fmt.Sprintf(
		"INSERT INTO logs (id, agent_id, ts, level, message, provider, outcome) VALUES %s",
		strings.TrimSuffix(placeholders.String(), ","),
	)

	if _, err := s.pool.Exec(ctx, query, vals...); err != nil {
		return &domain.StoreError{Op: "write log batch", Err: err}
	}
	return nil
}

// RecentLogs returns the newest entries, timestamp descending.
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]*domain.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := `SELECT id, agent_id, ts, level, message, COALESCE(provider, ''), COALESCE(outcome, '')
	          FROM logs ORDER BY ts DESC LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, &domain.StoreError{Op: "read logs", Err: err}
	}
	defer rows.Close()

	results := make([]*domain.LogEntry, 0)
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.ID, &e.AgentID, &e.Timestamp, &e.Level, &e.Message, &e.Provider, &e.Outcome); err != nil {
			return nil, &domain.StoreError{Op: "scan log entry", Err: err}
		}
		results = append(results, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "iterate logs", Err: err}
	}
	return results, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

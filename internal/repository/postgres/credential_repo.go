package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/personaliz/agentd/internal/domain"
)

// SetCredential writes the single provider slot.
func (s *Store) SetCredential(ctx context.Context, provider, key string) error {
	query := `UPDATE credential SET provider = $1, api_key = $2, updated_at = $3 WHERE id = 1`
	if _, err := s.pool.Exec(ctx, query, provider, key, time.Now()); err != nil {
		return &domain.StoreError{Op: "set credential", Err: err}
	}
	return nil
}

// ClearCredential unconditionally blanks both fields.
func (s *Store) ClearCredential(ctx context.Context) error {
	query := `UPDATE credential SET provider = NULL, api_key = NULL, updated_at = $1 WHERE id = 1`
	if _, err := s.pool.Exec(ctx, query, time.Now()); err != nil {
		return &domain.StoreError{Op: "clear credential", Err: err}
	}
	return nil
}

// GetCredential reads the slot fresh from the store. An empty or
// whitespace-only key means "absent": (nil, nil). That rule is the sole
// signal the router uses to pick local vs external generation.
func (s *Store) GetCredential(ctx context.Context) (*domain.Credential, error) {
	query := `SELECT provider, api_key, updated_at FROM credential WHERE id = 1`

	var provider, key sql.NullString
	var updatedAt sql.NullTime
	err := s.pool.QueryRow(ctx, query).Scan(&provider, &key, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StoreError{Op: "get credential", Err: err}
	}

	if !key.Valid || strings.TrimSpace(key.String) == "" {
		return nil, nil
	}

	cred := &domain.Credential{
		Provider: provider.String,
		APIKey:   strings.TrimSpace(key.String),
	}
	if updatedAt.Valid {
		cred.UpdatedAt = updatedAt.Time
	}
	return cred, nil
}

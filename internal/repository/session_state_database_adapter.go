package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sqldojo/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SessionStateDatabaseAdapter implements domain.SessionStateRepository over
// the app_system.session_state key/value table.
type SessionStateDatabaseAdapter struct {
	db *sqlx.DB
}

// NewSessionStateDatabaseAdapter creates a new instance of SessionStateDatabaseAdapter
func NewSessionStateDatabaseAdapter(db *sqlx.DB) domain.SessionStateRepository {
	return &SessionStateDatabaseAdapter{db: db}
}

// Get implements domain.SessionStateRepository
func (a *SessionStateDatabaseAdapter) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var valueJSON string
	err := a.db.GetContext(ctx, &valueJSON,
		`SELECT value_json FROM app_system.session_state WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get session state %q: %w", key, err)
	}
	return json.RawMessage(valueJSON), true, nil
}

// Set implements domain.SessionStateRepository. Existing keys are overwritten
// in place.
func (a *SessionStateDatabaseAdapter) Set(ctx context.Context, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session state %q: %w", key, err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO app_system.session_state (key, value_json, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value_json = EXCLUDED.value_json, updated_at = NOW()`,
		key, string(valueJSON))
	if err != nil {
		return fmt.Errorf("failed to set session state %q: %w", key, err)
	}
	return nil
}

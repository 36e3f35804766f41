package repository

import (
	"context"
	"fmt"
	"strings"

	"sqldojo/internal/domain"
	"sqldojo/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// workspaceSchema is the disposable namespace. Everything in it may be
// dropped at any reset; the system namespace is never touched here.
const workspaceSchema = "public"

// WorkspaceDatabaseAdapter implements domain.WorkspaceRepository.
type WorkspaceDatabaseAdapter struct {
	db *sqlx.DB
}

// NewWorkspaceDatabaseAdapter creates a new instance of WorkspaceDatabaseAdapter
func NewWorkspaceDatabaseAdapter(db *sqlx.DB) domain.WorkspaceRepository {
	return &WorkspaceDatabaseAdapter{db: db}
}

// Reset implements domain.WorkspaceRepository. The drop of the existing
// tables and the application of the generated statements run in a single
// transaction: a half-created schema would corrupt subsequent problem
// generation, so either the whole reset commits or none of it is visible.
func (a *WorkspaceDatabaseAdapter) Reset(ctx context.Context, statements []string) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	var tableNames []string
	if err := tx.SelectContext(ctx, &tableNames,
		`SELECT table_name
		 FROM information_schema.tables
		 WHERE table_schema = $1 AND table_type = 'BASE TABLE'`,
		workspaceSchema); err != nil {
		return fmt.Errorf("failed to list workspace tables: %w", err)
	}

	for _, tableName := range tableNames {
		// CASCADE also removes dependent constraints on other tables.
		drop := fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, tableName)
		if _, err := tx.ExecContext(ctx, drop); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tableName, err)
		}
	}
	if len(tableNames) > 0 {
		logger.Get().Info("Dropped workspace tables",
			zap.Int("count", len(tableNames)),
			zap.Strings("tables", tableNames))
	}

	for _, statement := range statements {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply generated statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit workspace reset: %w", err)
	}
	logger.Get().Info("Applied generated statements", zap.Int("count", len(statements)))
	return nil
}

package domain

import (
	"context"
	"encoding/json"
)

// ProblemRepository persists problems in the system namespace.
type ProblemRepository interface {
	// SaveProblem inserts the problem as active and deactivates all prior
	// problems in the same transaction. Returns the assigned id.
	SaveProblem(ctx context.Context, problem *Problem) (int64, error)
	// GetProblem returns nil without error when the id is unknown.
	GetProblem(ctx context.Context, id int64) (*Problem, error)
	DeactivateAll(ctx context.Context) error
}

// SessionStateRepository is a small keyed JSON mapping used for difficulty
// adaptation. Keys are overwritten in place, never deleted.
type SessionStateRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value any) error
}

// WorkspaceRepository administers the disposable namespace holding the
// learner-facing generated tables.
type WorkspaceRepository interface {
	// Reset drops every table in the disposable namespace and applies the
	// given DDL/DML statements inside a single transaction: either the whole
	// reset is visible or none of it is.
	Reset(ctx context.Context, statements []string) error
}

// SchemaDescriber reads the live catalog for the disposable namespace.
type SchemaDescriber interface {
	// Describe fails with a NO_TABLES domain error when the namespace is empty.
	Describe(ctx context.Context) ([]TableSchema, error)
}

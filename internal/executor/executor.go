// Package executor runs a single validated SQL statement against the store
// under a wall-clock timeout and a row cap, and wraps database failures into
// typed outcomes. It never retries; retry policy belongs to the caller.
package executor

import (
	"context"
	"errors"
	"time"

	"sqldojo/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// ErrorKind classifies an execution failure. Syntax and runtime are kept
// apart because they drive different feedback text.
type ErrorKind string

const (
	KindTimeout ErrorKind = "timeout"
	KindSyntax  ErrorKind = "syntax"
	KindRuntime ErrorKind = "runtime"
)

// ExecutionError is a typed execution failure.
type ExecutionError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ExecutionError) Error() string {
	return e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Executor executes read queries over a shared connection pool. The pool's
// credentials are expected to be privilege-restricted to SELECT on the
// disposable namespace: this is the second, independent control behind the
// textual guard.
type Executor struct {
	db *sqlx.DB
}

func NewExecutor(db *sqlx.DB) *Executor {
	return &Executor{db: db}
}

// Execute runs exactly one statement. Results are truncated to rowCap
// without error. On timeout the underlying statement is cancelled through
// the context so the connection returns to the pool.
func (e *Executor) Execute(ctx context.Context, query string, timeout time.Duration, rowCap int) (*domain.ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rows, err := e.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, classify(ctx, err)
	}

	result := &domain.ResultSet{Columns: columns, Rows: []domain.Row{}}
	for rows.Next() {
		if len(result.Rows) >= rowCap {
			break
		}
		values, err := rows.SliceScan()
		if err != nil {
			return nil, classify(ctx, err)
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeScanValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(ctx, err)
	}

	return result, nil
}

// queryCanceled is the SQLSTATE Postgres reports when statement execution is
// cancelled, including cancellation driven by our context deadline.
const queryCanceled = "57014"

// syntaxError is the SQLSTATE for a statement the engine could not parse.
// Other 42-class errors (undefined column, undefined table, type mismatch)
// are runtime failures from the learner's point of view.
const syntaxError = "42601"

func classify(ctx context.Context, err error) *ExecutionError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ExecutionError{
			Kind:    KindTimeout,
			Message: "execution exceeded time limit",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case queryCanceled:
			return &ExecutionError{
				Kind:    KindTimeout,
				Message: "execution exceeded time limit",
				Cause:   err,
			}
		case syntaxError:
			return &ExecutionError{
				Kind:    KindSyntax,
				Message: pgErr.Message,
				Cause:   err,
			}
		default:
			return &ExecutionError{
				Kind:    KindRuntime,
				Message: pgErr.Message,
				Cause:   err,
			}
		}
	}

	return &ExecutionError{
		Kind:    KindRuntime,
		Message: err.Error(),
		Cause:   err,
	}
}

// normalizeScanValue flattens driver byte slices into strings so captured
// rows survive a JSON round-trip unchanged.
func normalizeScanValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sqldojo/internal/domain"
	"sqldojo/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// ProblemDatabaseAdapter implements domain.ProblemRepository using sqlx.DB
// against the app_system namespace.
type ProblemDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProblemDatabaseAdapter creates a new instance of ProblemDatabaseAdapter
func NewProblemDatabaseAdapter(db *sqlx.DB) domain.ProblemRepository {
	return &ProblemDatabaseAdapter{db: db}
}

// SaveProblem implements domain.ProblemRepository. The deactivation of prior
// problems and the insert share one transaction so exactly one problem is
// active afterwards.
func (a *ProblemDatabaseAdapter) SaveProblem(ctx context.Context, problem *domain.Problem) (int64, error) {
	model, err := toModelProblem(problem)
	if err != nil {
		return 0, fmt.Errorf("failed to encode problem: %w", err)
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE app_system.problems SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return 0, fmt.Errorf("failed to deactivate prior problems: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO app_system.problems
		    (theme, correct_sql, result_json, difficulty, category, table_schemas, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id`,
		model.Theme,
		model.CorrectSQL,
		model.ResultJSON,
		model.Difficulty,
		model.Category,
		model.TableSchemas,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert problem: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit problem: %w", err)
	}
	return id, nil
}

// GetProblem implements domain.ProblemRepository
func (a *ProblemDatabaseAdapter) GetProblem(ctx context.Context, id int64) (*domain.Problem, error) {
	var model models.Problem
	err := a.db.GetContext(ctx, &model,
		`SELECT id, theme, correct_sql, result_json, difficulty, category,
		        table_schemas, created_at, is_active
		 FROM app_system.problems
		 WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem %d: %w", id, err)
	}
	return toDomainProblem(&model)
}

// DeactivateAll implements domain.ProblemRepository
func (a *ProblemDatabaseAdapter) DeactivateAll(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx,
		`UPDATE app_system.problems SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
		return fmt.Errorf("failed to deactivate problems: %w", err)
	}
	return nil
}

func toModelProblem(problem *domain.Problem) (*models.Problem, error) {
	if problem == nil {
		return nil, fmt.Errorf("cannot save nil problem")
	}
	resultJSON, err := json.Marshal(problem.Result)
	if err != nil {
		return nil, err
	}
	schemasJSON, err := json.Marshal(problem.TableSchemas)
	if err != nil {
		return nil, err
	}
	return &models.Problem{
		Theme:        problem.Theme,
		CorrectSQL:   problem.CorrectSQL,
		ResultJSON:   string(resultJSON),
		Difficulty:   problem.Difficulty,
		Category:     problem.Category,
		TableSchemas: string(schemasJSON),
		IsActive:     problem.IsActive,
	}, nil
}

func toDomainProblem(model *models.Problem) (*domain.Problem, error) {
	var result domain.ResultSet
	if err := decodeJSONNumbers(model.ResultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result of problem %d: %w", model.ID, err)
	}
	var schemas []domain.TableSchema
	if model.TableSchemas != "" {
		if err := json.Unmarshal([]byte(model.TableSchemas), &schemas); err != nil {
			return nil, fmt.Errorf("failed to decode schemas of problem %d: %w", model.ID, err)
		}
	}
	return &domain.Problem{
		ID:           model.ID,
		Theme:        model.Theme,
		CorrectSQL:   model.CorrectSQL,
		Result:       &result,
		Difficulty:   model.Difficulty,
		Category:     model.Category,
		TableSchemas: schemas,
		CreatedAt:    model.CreatedAt,
		IsActive:     model.IsActive,
	}, nil
}

// decodeJSONNumbers unmarshals with json.Number so captured integers do not
// degrade to float64 before the comparator normalizes them.
func decodeJSONNumbers(data string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.UseNumber()
	return dec.Decode(v)
}

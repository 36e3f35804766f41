package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sqldojo/internal/domain"
	"sqldojo/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func sampleProblem() *domain.Problem {
	return &domain.Problem{
		Theme:      "library",
		CorrectSQL: "SELECT title FROM books WHERE published_year > 2000",
		Result: &domain.ResultSet{
			Columns: []string{"title"},
			Rows:    []domain.Row{{"title": "Learning SQL"}},
		},
		Difficulty: 3,
		Category:   "filter",
		TableSchemas: []domain.TableSchema{
			{TableName: "books", Columns: []domain.ColumnSchema{
				{Name: "title", Type: "TEXT", Nullable: false},
			}},
		},
		IsActive: true,
	}
}

func TestSaveProblemDeactivatesPriorInSameTx(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewProblemDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE app_system.problems SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO app_system.problems").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	id, err := adapter.SaveProblem(context.Background(), sampleProblem())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveProblemRollsBackOnInsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewProblemDatabaseAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE app_system.problems SET is_active").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO app_system.problems").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := adapter.SaveProblem(context.Background(), sampleProblem())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProblemNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewProblemDatabaseAdapter(db)

	mock.ExpectQuery("SELECT id, theme, correct_sql").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	problem, err := adapter.GetProblem(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, problem)
}

func TestGetProblemRoundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewProblemDatabaseAdapter(db)

	original := sampleProblem()
	resultJSON, err := json.Marshal(original.Result)
	require.NoError(t, err)
	schemasJSON, err := json.Marshal(original.TableSchemas)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT id, theme, correct_sql").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "theme", "correct_sql", "result_json", "difficulty",
			"category", "table_schemas", "created_at", "is_active",
		}).AddRow(int64(7), original.Theme, original.CorrectSQL, string(resultJSON),
			original.Difficulty, original.Category, string(schemasJSON), now, true))

	problem, err := adapter.GetProblem(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, problem)
	assert.Equal(t, int64(7), problem.ID)
	assert.Equal(t, original.CorrectSQL, problem.CorrectSQL)
	assert.Equal(t, []string{"title"}, problem.Result.Columns)
	require.Len(t, problem.Result.Rows, 1)
	assert.Equal(t, "Learning SQL", problem.Result.Rows[0]["title"])
	require.Len(t, problem.TableSchemas, 1)
	assert.Equal(t, "books", problem.TableSchemas[0].TableName)
}

func TestToDomainProblemKeepsIntegersIntegral(t *testing.T) {
	model := &models.Problem{
		ID:         1,
		Theme:      "employees",
		CorrectSQL: "SELECT salary FROM employees",
		ResultJSON: `{"columns":["salary"],"rows":[{"salary":350000}]}`,
	}
	problem, err := toDomainProblem(model)
	require.NoError(t, err)
	salary := problem.Result.Rows[0]["salary"]
	num, ok := salary.(json.Number)
	require.True(t, ok, "expected json.Number, got %T", salary)
	i, err := num.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(350000), i)
}

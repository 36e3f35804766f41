package introspector

import (
	"context"
	"testing"

	"sqldojo/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockIntrospector(t *testing.T) (*Introspector, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewIntrospector(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestDescribeEmptyNamespace(t *testing.T) {
	intro, mock := newMockIntrospector(t)

	mock.ExpectQuery("SELECT table_name").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	_, err := intro.Describe(context.Background())
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrNoTables, domainErr.Code)
}

func TestDescribeResolvesConstraints(t *testing.T) {
	intro, mock := newMockIntrospector(t)

	mock.ExpectQuery("SELECT table_name").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("departments").AddRow("employees"))

	// departments
	mock.ExpectQuery("SELECT column_name, data_type, is_nullable").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable"}).
			AddRow("id", "integer", "NO").
			AddRow("name", "character varying", "NO"))
	mock.ExpectQuery("PRIMARY KEY").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))
	mock.ExpectQuery("FOREIGN KEY").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "foreign_table_name", "foreign_column_name"}))

	// employees
	mock.ExpectQuery("SELECT column_name, data_type, is_nullable").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable"}).
			AddRow("id", "integer", "NO").
			AddRow("department_id", "integer", "YES"))
	mock.ExpectQuery("PRIMARY KEY").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id"))
	mock.ExpectQuery("FOREIGN KEY").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "foreign_table_name", "foreign_column_name"}).
			AddRow("department_id", "departments", "id"))

	schemas, err := intro.Describe(context.Background())
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	departments := schemas[0]
	assert.Equal(t, "departments", departments.TableName)
	require.Len(t, departments.Columns, 2)
	assert.Equal(t, "INTEGER", departments.Columns[0].Type)
	assert.True(t, departments.Columns[0].IsPrimaryKey)
	assert.False(t, departments.Columns[0].Nullable)
	assert.Nil(t, departments.Columns[0].ForeignKey)

	employees := schemas[1]
	require.Len(t, employees.Columns, 2)
	deptCol := employees.Columns[1]
	assert.True(t, deptCol.Nullable)
	require.NotNil(t, deptCol.ForeignKey)
	assert.Equal(t, "departments", deptCol.ForeignKey.Table)
	assert.Equal(t, "id", deptCol.ForeignKey.Column)

	assert.NoError(t, mock.ExpectationsWereMet())
}

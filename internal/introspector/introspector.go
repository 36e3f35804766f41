// Package introspector reads the live database catalog and projects the
// disposable namespace into a structural description consumed by the UI and
// by generation prompts. It never touches the system namespace and never
// caches: any reset can replace the underlying tables.
package introspector

import (
	"context"
	"fmt"
	"strings"

	"sqldojo/internal/domain"

	"github.com/jmoiron/sqlx"
)

// workspaceSchema is the disposable namespace holding learner-facing tables.
const workspaceSchema = "public"

// Introspector implements domain.SchemaDescriber over information_schema.
type Introspector struct {
	db *sqlx.DB
}

func NewIntrospector(db *sqlx.DB) *Introspector {
	return &Introspector{db: db}
}

const listTablesQuery = `SELECT table_name
FROM information_schema.tables
WHERE table_schema = $1 AND table_type = 'BASE TABLE'
ORDER BY table_name`

const listColumnsQuery = `SELECT column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

const listPrimaryKeysQuery = `SELECT kcu.column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.table_constraints tc
    ON kcu.constraint_name = tc.constraint_name
WHERE tc.table_schema = $1 AND tc.table_name = $2
  AND tc.constraint_type = 'PRIMARY KEY'`

const listForeignKeysQuery = `SELECT kcu.column_name,
    ccu.table_name AS foreign_table_name,
    ccu.column_name AS foreign_column_name
FROM information_schema.key_column_usage kcu
JOIN information_schema.constraint_column_usage ccu
    ON kcu.constraint_name = ccu.constraint_name
JOIN information_schema.table_constraints tc
    ON kcu.constraint_name = tc.constraint_name
WHERE tc.table_schema = $1 AND tc.table_name = $2
  AND tc.constraint_type = 'FOREIGN KEY'`

// Describe implements domain.SchemaDescriber.
func (i *Introspector) Describe(ctx context.Context) ([]domain.TableSchema, error) {
	var tableNames []string
	if err := i.db.SelectContext(ctx, &tableNames, listTablesQuery, workspaceSchema); err != nil {
		return nil, domain.NewDatabaseError("Failed to list tables", err)
	}
	if len(tableNames) == 0 {
		return nil, domain.NewNoTablesError()
	}

	schemas := make([]domain.TableSchema, 0, len(tableNames))
	for _, tableName := range tableNames {
		schema, err := i.describeTable(ctx, tableName)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *schema)
	}
	return schemas, nil
}

func (i *Introspector) describeTable(ctx context.Context, tableName string) (*domain.TableSchema, error) {
	var columns []struct {
		ColumnName string `db:"column_name"`
		DataType   string `db:"data_type"`
		IsNullable string `db:"is_nullable"`
	}
	if err := i.db.SelectContext(ctx, &columns, listColumnsQuery, workspaceSchema, tableName); err != nil {
		return nil, domain.NewDatabaseError(fmt.Sprintf("Failed to read columns of %s", tableName), err)
	}

	var pkColumns []string
	if err := i.db.SelectContext(ctx, &pkColumns, listPrimaryKeysQuery, workspaceSchema, tableName); err != nil {
		return nil, domain.NewDatabaseError(fmt.Sprintf("Failed to read primary keys of %s", tableName), err)
	}
	pkSet := make(map[string]struct{}, len(pkColumns))
	for _, c := range pkColumns {
		pkSet[c] = struct{}{}
	}

	var fks []struct {
		ColumnName        string `db:"column_name"`
		ForeignTableName  string `db:"foreign_table_name"`
		ForeignColumnName string `db:"foreign_column_name"`
	}
	if err := i.db.SelectContext(ctx, &fks, listForeignKeysQuery, workspaceSchema, tableName); err != nil {
		return nil, domain.NewDatabaseError(fmt.Sprintf("Failed to read foreign keys of %s", tableName), err)
	}
	fkByColumn := make(map[string]domain.ForeignKeyRef, len(fks))
	for _, fk := range fks {
		fkByColumn[fk.ColumnName] = domain.ForeignKeyRef{
			Table:  fk.ForeignTableName,
			Column: fk.ForeignColumnName,
		}
	}

	schema := &domain.TableSchema{
		TableName: tableName,
		Columns:   make([]domain.ColumnSchema, 0, len(columns)),
	}
	for _, col := range columns {
		column := domain.ColumnSchema{
			Name:     col.ColumnName,
			Type:     strings.ToUpper(col.DataType),
			Nullable: col.IsNullable == "YES",
		}
		if _, ok := pkSet[col.ColumnName]; ok {
			column.IsPrimaryKey = true
		}
		if ref, ok := fkByColumn[col.ColumnName]; ok {
			column.ForeignKey = &ref
		}
		schema.Columns = append(schema.Columns, column)
	}
	return schema, nil
}

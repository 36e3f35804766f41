package prompt

import (
	"testing"

	"sqldojo/internal/comparator"
	"sqldojo/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sampleSchemas() []domain.TableSchema {
	return []domain.TableSchema{
		{
			TableName: "employees",
			Columns: []domain.ColumnSchema{
				{Name: "id", Type: "INTEGER", IsPrimaryKey: true},
				{Name: "name", Type: "TEXT"},
				{Name: "department_id", Type: "INTEGER", Nullable: true,
					ForeignKey: &domain.ForeignKeyRef{Table: "departments", Column: "id"}},
			},
		},
	}
}

func TestRenderSchemas(t *testing.T) {
	rendered := RenderSchemas(sampleSchemas())
	assert.Contains(t, rendered, "Table: employees")
	assert.Contains(t, rendered, "id: INTEGER NOT NULL PRIMARY KEY")
	assert.Contains(t, rendered, "department_id: INTEGER NULL REFERENCES departments(id)")

	assert.Equal(t, "(no tables)", RenderSchemas(nil))
}

func TestProblemGenerationIncludesConstraints(t *testing.T) {
	system, user := ProblemGeneration(sampleSchemas(), 4, "", false)
	assert.Contains(t, system, "Target difficulty 4")
	assert.Contains(t, system, "between 3 and 10 rows")
	assert.Contains(t, system, "Table: employees")
	assert.Contains(t, user, "Author one SQL problem")

	simplified, _ := ProblemGeneration(sampleSchemas(), 4, "", true)
	assert.Contains(t, simplified, "Keep the query simple")
}

func TestSchemaGenerationCarriesThemeAndHint(t *testing.T) {
	system, user := SchemaGeneration("library", "include overdue loans")
	assert.Contains(t, system, `theme "library"`)
	assert.Contains(t, user, "include overdue loans")
}

func TestRenderReport(t *testing.T) {
	assert.Equal(t, "row count differs: expected 3 rows, got 2",
		RenderReport(&comparator.ComparisonReport{
			RowCountMismatch: true, ExpectedRows: 3, ActualRows: 2,
		}))

	assert.Equal(t, "missing columns: salary",
		RenderReport(&comparator.ComparisonReport{
			MissingColumns: []string{"salary"}, FirstDiffRow: -1,
		}))

	assert.Equal(t, "row 2 differs in columns: salary",
		RenderReport(&comparator.ComparisonReport{
			FirstDiffRow: 1, DiffColumns: []string{"salary"},
		}))
}

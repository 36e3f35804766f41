// Package prompt builds the system/user prompt pairs sent to the generation
// provider for schema synthesis, problem synthesis and feedback text.
package prompt

import (
	"fmt"
	"strings"

	"sqldojo/internal/comparator"
	"sqldojo/internal/domain"
)

// Themes is the fixed candidate list used when the caller provides no theme
// hint.
var Themes = []string{
	"employee management",
	"library",
	"e-commerce",
	"school",
	"hospital",
}

// SchemaGeneration builds the prompt pair asking the provider for a themed
// schema plus sample data, returned as JSON with theme, description and
// sql_statements.
func SchemaGeneration(theme, userHint string) (system, user string) {
	system = fmt.Sprintf(`You are a table design assistant for a SQL learning app.

**Goal**: create tables and sample data for learners to practice SQL against.

**Requirements**:
1. Create 3-5 tables for the theme "%s"
2. Relate the tables with appropriate foreign keys
3. Insert realistic sample data: tens of rows for master tables, up to a few hundred for transactional tables
4. The data must be varied enough to practice JOIN, GROUP BY and aggregate functions

**Output format**:
`+"```json"+`
{
  "theme": "theme name",
  "description": "short description of the scenario",
  "sql_statements": [
    "CREATE TABLE ...",
    "INSERT INTO ...",
    "..."
  ]
}
`+"```"+`

**Rules**:
- Output only CREATE TABLE and INSERT statements
- Use PostgreSQL-compatible syntax
- Column names and table names in snake_case`, theme)

	if userHint != "" {
		user = fmt.Sprintf("Create the tables following this instruction:\n%s", userHint)
	} else {
		user = "Create tables and sample data suitable for learning."
	}
	return system, user
}

// ProblemGeneration builds the prompt pair asking for one SELECT statement at
// the target difficulty. When simplified is set (a regeneration attempt after
// a failure) the constraints are loosened to favor a query that executes.
func ProblemGeneration(schemas []domain.TableSchema, difficulty int, userHint string, simplified bool) (system, user string) {
	var constraints string
	if simplified {
		constraints = `3. Keep the query simple: a single table, a WHERE filter, no joins
4. The result MUST contain between 3 and 10 rows`
	} else {
		constraints = `3. Use JOIN, GROUP BY or aggregate functions when the difficulty calls for it
4. The result MUST contain between 3 and 10 rows`
	}

	system = fmt.Sprintf(`You are a problem author for a SQL learning app that teaches by
reverse-engineering: the learner sees a query result and must write the
SELECT statement that reproduces it.

**Current tables**:
%s

**Requirements**:
1. Author one SELECT statement against the tables above
2. Target difficulty %d on a 1-10 scale (1 = single-table SELECT, 10 = multi-join aggregates with subqueries)
%s

**Output format**:
`+"```json"+`
{
  "correct_sql": "the SELECT statement",
  "category": "one of: filter, join, aggregate, subquery, sort",
  "hint": "optional hint text"
}
`+"```"+`

**Rules**:
- SELECT statements only
- Column and table names must match the schema exactly
- The statement must be directly executable`, RenderSchemas(schemas), difficulty, constraints)

	if userHint != "" {
		user = fmt.Sprintf("Author the problem following this instruction:\n%s", userHint)
	} else {
		user = "Author one SQL problem at the target difficulty."
	}
	return system, user
}

// Feedback builds the prompt pair asking for learner-facing feedback text.
// The structured diff is rendered so the provider grounds its message in the
// actual difference; the caller falls back to templated text when the
// provider is unavailable.
func Feedback(isCorrect bool, userSQL, correctSQL string, report *comparator.ComparisonReport) (system, user string) {
	system = `You are a grading assistant for a SQL learning app.

**Guidelines**:
- If the answer is correct, point out what the learner did well in 1-2 sentences
- If the answer is incorrect, explain concretely what differs, without revealing the correct SQL
- Always constructive, always about the learner's query
- Respond with ONLY a JSON object:
` + "```json" + `
{
  "feedback": "the feedback message",
  "hint": "a short hint when incorrect, empty when correct"
}
` + "```"

	var b strings.Builder
	fmt.Fprintf(&b, "**Learner's SQL**:\n```sql\n%s\n```\n\n", userSQL)
	fmt.Fprintf(&b, "**Reference SQL** (do not reveal):\n```sql\n%s\n```\n\n", correctSQL)
	fmt.Fprintf(&b, "**Correct**: %t\n\n", isCorrect)
	if report != nil && !report.Equivalent {
		fmt.Fprintf(&b, "**Observed difference**: %s\n", RenderReport(report))
	}
	b.WriteString("\nGrade this answer and provide feedback.")
	return system, b.String()
}

// ExplainError builds the prompt pair asking the provider to explain a
// database error in plain language. Best-effort; callers must tolerate
// provider failure.
func ExplainError(userSQL, dbError string) (system, user string) {
	system = `You are a SQL tutor. The learner's query failed. Explain the database
error in one or two plain sentences and suggest what to check. Do not write
the corrected query for them. Respond with plain text only.`
	user = fmt.Sprintf("Query:\n```sql\n%s\n```\n\nDatabase error:\n%s", userSQL, dbError)
	return system, user
}

// RenderSchemas formats a schema description for inclusion in a prompt.
func RenderSchemas(schemas []domain.TableSchema) string {
	if len(schemas) == 0 {
		return "(no tables)"
	}
	var parts []string
	for _, table := range schemas {
		var b strings.Builder
		fmt.Fprintf(&b, "Table: %s\n", table.TableName)
		for _, col := range table.Columns {
			nullable := "NOT NULL"
			if col.Nullable {
				nullable = "NULL"
			}
			fmt.Fprintf(&b, "  - %s: %s %s", col.Name, col.Type, nullable)
			if col.IsPrimaryKey {
				b.WriteString(" PRIMARY KEY")
			}
			if col.ForeignKey != nil {
				fmt.Fprintf(&b, " REFERENCES %s(%s)", col.ForeignKey.Table, col.ForeignKey.Column)
			}
			b.WriteString("\n")
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// RenderReport turns a comparison report into one plain sentence.
func RenderReport(report *comparator.ComparisonReport) string {
	switch {
	case report.RowCountMismatch:
		return fmt.Sprintf("row count differs: expected %d rows, got %d", report.ExpectedRows, report.ActualRows)
	case len(report.MissingColumns) > 0 || len(report.ExtraColumns) > 0:
		var parts []string
		if len(report.MissingColumns) > 0 {
			parts = append(parts, fmt.Sprintf("missing columns: %s", strings.Join(report.MissingColumns, ", ")))
		}
		if len(report.ExtraColumns) > 0 {
			parts = append(parts, fmt.Sprintf("unexpected columns: %s", strings.Join(report.ExtraColumns, ", ")))
		}
		return strings.Join(parts, "; ")
	case report.FirstDiffRow >= 0:
		return fmt.Sprintf("row %d differs in columns: %s", report.FirstDiffRow+1, strings.Join(report.DiffColumns, ", "))
	default:
		return "results match"
	}
}

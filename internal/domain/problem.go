package domain

import "time"

// Difficulty bounds for generated problems.
const (
	MinDifficulty = 1
	MaxDifficulty = 10
)

// Row is a single result row keyed by column name. Column order lives on the
// enclosing ResultSet; the map itself is unordered.
type Row map[string]any

// ResultSet is a captured query result: the column order as returned by the
// engine plus the rows in engine order.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// RowCount returns the number of rows in the set.
func (rs *ResultSet) RowCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// Truncate returns a copy of the set limited to at most n rows.
func (rs *ResultSet) Truncate(n int) *ResultSet {
	if rs == nil || len(rs.Rows) <= n {
		return rs
	}
	return &ResultSet{Columns: rs.Columns, Rows: rs.Rows[:n]}
}

// Problem is one unit of learning content. The authoritative SQL is never
// exposed to the learner; the captured result is the comparison baseline.
// Problems are immutable once created and superseded by deactivation.
type Problem struct {
	ID           int64
	Theme        string
	CorrectSQL   string
	Result       *ResultSet
	Difficulty   int
	Category     string
	TableSchemas []TableSchema
	CreatedAt    time.Time
	IsActive     bool
}

// Session state keys used by the lifecycle manager.
const (
	SessionKeyTheme      = "current_theme"
	SessionKeyHistory    = "answer_history"
	SessionKeyDifficulty = "current_difficulty"
)

// HistoryLimit caps the rolling answer-correctness window kept in session state.
const HistoryLimit = 20

package models

import "time"

// Problem is the database shape of a problem row in app_system.problems.
// Result and table schemas travel as JSONB.
type Problem struct {
	ID           int64     `db:"id"`
	Theme        string    `db:"theme"`
	CorrectSQL   string    `db:"correct_sql"`
	ResultJSON   string    `db:"result_json"`
	Difficulty   int       `db:"difficulty"`
	Category     string    `db:"category"`
	TableSchemas string    `db:"table_schemas"`
	CreatedAt    time.Time `db:"created_at"`
	IsActive     bool      `db:"is_active"`
}

// SessionState is one keyed JSON value in app_system.session_state.
type SessionState struct {
	Key       string    `db:"key"`
	ValueJSON string    `db:"value_json"`
	UpdatedAt time.Time `db:"updated_at"`
}

package dto

import "sqldojo/internal/domain"

// CreateTablesRequest asks for a schema reset.
// @Description Request body for creating learning tables
type CreateTablesRequest struct {
	Prompt string `json:"prompt"`
}

// CreateTablesResponse reports the theme the tables were generated for.
type CreateTablesResponse struct {
	Success bool   `json:"success"`
	Theme   string `json:"theme"`
	Message string `json:"message,omitempty"`
}

// TableSchemasResponse is the structural description of the current tables.
type TableSchemasResponse struct {
	Schemas    []domain.TableSchema `json:"schemas"`
	Theme      string               `json:"theme,omitempty"`
	TableCount int                  `json:"table_count"`
	TableNames []string             `json:"table_names"`
}

// GenerateProblemRequest asks for a new problem.
// @Description Request body for generating a problem
type GenerateProblemRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateProblemResponse carries the captured result the learner must
// reproduce. The authoritative SQL is never included.
type GenerateProblemResponse struct {
	ProblemID   int64        `json:"problem_id"`
	Result      []domain.Row `json:"result"`
	RowCount    int          `json:"row_count"`
	ColumnNames []string     `json:"column_names"`
	Difficulty  int          `json:"difficulty"`
}

// CheckAnswerContext identifies the problem and the candidate SQL.
type CheckAnswerContext struct {
	ProblemID int64  `json:"problem_id"`
	UserSQL   string `json:"user_sql"`
}

// CheckAnswerRequest submits a candidate answer.
// @Description Request body for checking an answer
type CheckAnswerRequest struct {
	Prompt  string             `json:"prompt"`
	Context CheckAnswerContext `json:"context"`
}

// CheckAnswerResponse is the answer-check outcome. A semantically wrong or
// rejected candidate still returns HTTP 200 with IsCorrect false and a
// classified ErrorType; only malformed requests get 4xx.
type CheckAnswerResponse struct {
	IsCorrect      bool         `json:"is_correct"`
	Message        string       `json:"message"`
	Hint           string       `json:"hint,omitempty"`
	ErrorType      string       `json:"error_type,omitempty"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	UserResult     []domain.Row `json:"user_result,omitempty"`
	ExpectedResult []domain.Row `json:"expected_result,omitempty"`
}

// ErrorBody is the shared error payload shape.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse wraps every error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

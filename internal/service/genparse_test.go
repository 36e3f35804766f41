package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"theme":"library"}`,
			want:  `{"theme":"library"}`,
		},
		{
			name:  "json fence",
			input: "Here you go:\n```json\n{\"theme\":\"library\"}\n```",
			want:  `{"theme":"library"}`,
		},
		{
			name:  "plain fence",
			input: "```\n{\"theme\":\"library\"}\n```",
			want:  `{"theme":"library"}`,
		},
		{
			name:  "think block stripped",
			input: "<think>the user wants a schema</think>{\"theme\":\"library\"}",
			want:  `{"theme":"library"}`,
		},
		{
			name:  "prose around object",
			input: "Sure! {\"theme\":\"library\"} Hope that helps.",
			want:  `{"theme":"library"}`,
		},
		{
			name:    "no object",
			input:   "sorry, I cannot help with that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchemaGenResult(t *testing.T) {
	raw := "```json\n{\"theme\":\"library\",\"description\":\"books and loans\",\"sql_statements\":[\"CREATE TABLE books (id INT);\",\"  \",\"INSERT INTO books VALUES (1);\"]}\n```"

	result, err := parseSchemaGenResult(raw)

	require.NoError(t, err)
	assert.Equal(t, "library", result.Theme)
	assert.Equal(t, []string{"CREATE TABLE books (id INT)", "INSERT INTO books VALUES (1)"}, result.SQLStatements)
}

func TestParseSchemaGenResult_TrailingCommaCleaned(t *testing.T) {
	result, err := parseSchemaGenResult(`{"theme":"library","sql_statements":["CREATE TABLE books (id INT, title TEXT,);"]}`)

	require.NoError(t, err)
	assert.Equal(t, []string{"CREATE TABLE books (id INT, title TEXT)"}, result.SQLStatements)
}

func TestParseSchemaGenResult_NoStatements(t *testing.T) {
	_, err := parseSchemaGenResult(`{"theme":"library","sql_statements":[]}`)
	assert.Error(t, err)
}

func TestParseProblemGenResult(t *testing.T) {
	result, err := parseProblemGenResult(`{"correct_sql":"SELECT name FROM books;","category":"filter","hint":"look at titles"}`)

	require.NoError(t, err)
	assert.Equal(t, "SELECT name FROM books", result.CorrectSQL)
	assert.Equal(t, "filter", result.Category)
}

func TestParseProblemGenResult_EmptySQL(t *testing.T) {
	_, err := parseProblemGenResult(`{"correct_sql":"","category":"filter"}`)
	assert.Error(t, err)
}

func TestParseFeedbackResult(t *testing.T) {
	result, err := parseFeedbackResult(`{"feedback":"Close, check your WHERE clause.","hint":"compare salaries"}`)

	require.NoError(t, err)
	assert.Equal(t, "Close, check your WHERE clause.", result.Feedback)
	assert.Equal(t, "compare salaries", result.Hint)
}

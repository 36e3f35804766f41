package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"sqldojo/internal/domain"
)

// schemaGenResult is the JSON shape expected from a schema generation call.
type schemaGenResult struct {
	Theme         string   `json:"theme"`
	Description   string   `json:"description"`
	SQLStatements []string `json:"sql_statements"`
}

// problemGenResult is the JSON shape expected from a problem generation call.
type problemGenResult struct {
	CorrectSQL string `json:"correct_sql"`
	Category   string `json:"category"`
	Hint       string `json:"hint"`
}

// feedbackResult is the JSON shape expected from a feedback call.
type feedbackResult struct {
	Feedback string `json:"feedback"`
	Hint     string `json:"hint"`
}

var (
	jsonFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	thinkRegex     = regexp.MustCompile(`(?s)<think>.*?</think>`)
)

// extractJSON pulls the JSON payload out of a raw provider response. Models
// routinely wrap output in markdown fences or prepend reasoning blocks, so
// both are stripped before locating the outermost object.
func extractJSON(raw string) (string, error) {
	cleaned := thinkRegex.ReplaceAllString(raw, "")

	if m := jsonFenceRegex.FindStringSubmatch(cleaned); m != nil {
		cleaned = m[1]
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return cleaned[start : end+1], nil
}

func parseSchemaGenResult(raw string) (*schemaGenResult, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, domain.NewProviderResponseError(err.Error(), err)
	}
	var result schemaGenResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, domain.NewProviderResponseError("schema generation output is not valid JSON", err)
	}
	result.SQLStatements = cleanStatements(result.SQLStatements)
	if len(result.SQLStatements) == 0 {
		return nil, domain.NewProviderResponseError("schema generation output contains no SQL statements", nil)
	}
	return &result, nil
}

func parseProblemGenResult(raw string) (*problemGenResult, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, domain.NewProviderResponseError(err.Error(), err)
	}
	var result problemGenResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, domain.NewProviderResponseError("problem generation output is not valid JSON", err)
	}
	result.CorrectSQL = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(result.CorrectSQL), ";"))
	if result.CorrectSQL == "" {
		return nil, domain.NewProviderResponseError("problem generation output contains no SQL", nil)
	}
	return &result, nil
}

func parseFeedbackResult(raw string) (*feedbackResult, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, domain.NewProviderResponseError(err.Error(), err)
	}
	var result feedbackResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, domain.NewProviderResponseError("feedback output is not valid JSON", err)
	}
	if result.Feedback == "" {
		return nil, domain.NewProviderResponseError("feedback output contains no feedback text", nil)
	}
	return &result, nil
}

var trailingCommaRegex = regexp.MustCompile(`,\s*\)`)

// cleanStatements drops blank entries, trailing semicolons and dangling
// commas before a closing parenthesis, all of which models emit often
// enough that applying the statements raw would fail the whole reset.
func cleanStatements(statements []string) []string {
	cleaned := make([]string, 0, len(statements))
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		stmt = strings.TrimSuffix(stmt, ";")
		stmt = trailingCommaRegex.ReplaceAllString(stmt, ")")
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		cleaned = append(cleaned, stmt)
	}
	return cleaned
}

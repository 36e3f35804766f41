// Package sqlguard classifies learner-submitted SQL as safe-to-execute or
// rejects it with a reason. It is a defense-in-depth textual filter, not a
// parser: matching forbidden keywords and statement shape reduces the attack
// surface, but the real safety boundary is the restricted database role the
// candidate connection runs under, which must be SELECT-only regardless of
// what this package accepts.
package sqlguard

import (
	"fmt"
	"regexp"
	"strings"
)

// RejectionCode identifies why a candidate was rejected.
type RejectionCode string

const (
	EmptyInput         RejectionCode = "EMPTY_SQL"
	TooLong            RejectionCode = "SQL_TOO_LONG"
	ForbiddenStatement RejectionCode = "FORBIDDEN_STATEMENT"
	MultipleStatements RejectionCode = "MULTIPLE_STATEMENTS"
	NotASelect         RejectionCode = "NOT_A_SELECT"
)

// MaxQueryLength is the default cap on candidate SQL length.
const MaxQueryLength = 5000

// Rejection is a structured refusal. It implements error so callers can
// thread it through error returns, but it is a classification value, not an
// exceptional condition.
type Rejection struct {
	Code    RejectionCode
	Keyword string
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

var (
	// Word-boundary matching keeps identifiers like created_at or
	// updated_count from tripping the filter.
	forbiddenRe = regexp.MustCompile(`\b(INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|TRUNCATE|GRANT|REVOKE|EXECUTE|EXEC)\b`)

	// A semicolon followed by anything but trailing whitespace is a second
	// statement, the usual bypass of starts-with-SELECT checks.
	multiStatementRe = regexp.MustCompile(`;\s*\S`)

	allowedRes = []*regexp.Regexp{
		regexp.MustCompile(`^\s*SELECT(\s|$)`),
		regexp.MustCompile(`^\s*WITH\s`),
		regexp.MustCompile(`^\s*\(\s*SELECT\s`),
	}
)

// Validate classifies the candidate. A nil return means safe to hand to the
// executor. Pure function, no side effects.
func Validate(candidate string) *Rejection {
	return ValidateWithLimit(candidate, MaxQueryLength)
}

// ValidateWithLimit is Validate with a configurable length cap.
func ValidateWithLimit(candidate string, maxLength int) *Rejection {
	if strings.TrimSpace(candidate) == "" {
		return &Rejection{
			Code:    EmptyInput,
			Message: "No SQL was provided",
		}
	}

	if len(candidate) > maxLength {
		return &Rejection{
			Code:    TooLong,
			Message: fmt.Sprintf("SQL is too long (maximum %d characters)", maxLength),
		}
	}

	upper := strings.ToUpper(strings.TrimSpace(candidate))

	if m := forbiddenRe.FindStringSubmatch(upper); m != nil {
		return &Rejection{
			Code:    ForbiddenStatement,
			Keyword: m[1],
			Message: fmt.Sprintf("%s statements are not allowed", m[1]),
		}
	}

	if multiStatementRe.MatchString(upper) {
		return &Rejection{
			Code:    MultipleStatements,
			Message: "Multiple statements are not allowed",
		}
	}

	for _, re := range allowedRes {
		if re.MatchString(upper) {
			return nil
		}
	}

	return &Rejection{
		Code:    NotASelect,
		Message: "Only SELECT statements can be executed",
	}
}

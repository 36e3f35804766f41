package validation

import (
	"strings"

	"sqldojo/internal/domain"
)

// MaxPromptLength caps user hint text on every endpoint.
const MaxPromptLength = 1000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePrompt validates the optional prompt field shared by all write
// endpoints.
func (v *Validator) ValidatePrompt(prompt string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if len(prompt) > MaxPromptLength {
		errors = append(errors, domain.NewOutOfRangeError("prompt", len(prompt), 0, MaxPromptLength))
	}
	return errors
}

// ValidateCheckAnswerRequest validates the check answer request shape.
// Semantic SQL validation is the guard's job; this only rejects structurally
// malformed requests.
func (v *Validator) ValidateCheckAnswerRequest(problemID int64, userSQL, prompt string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if problemID <= 0 {
		errors = append(errors, domain.NewMissingFieldError("context.problem_id"))
	}
	if strings.TrimSpace(userSQL) == "" {
		errors = append(errors, domain.NewMissingFieldError("context.user_sql"))
	}
	errors = append(errors, v.ValidatePrompt(prompt)...)

	return errors
}

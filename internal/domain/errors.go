package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrDatabase   ErrorCode = "DATABASE_ERROR"

	// Problem lifecycle errors
	ErrNoTables           ErrorCode = "NO_TABLES"
	ErrProblemNotFound    ErrorCode = "PROBLEM_NOT_FOUND"
	ErrTableCreation      ErrorCode = "TABLE_CREATION_ERROR"
	ErrProblemGeneration  ErrorCode = "PROBLEM_GENERATION_ERROR"
	ErrInvalidSQL         ErrorCode = "INVALID_SQL"

	// Generation provider errors
	ErrProviderConnection ErrorCode = "LLM_CONNECTION_ERROR"
	ErrProviderTimeout    ErrorCode = "LLM_TIMEOUT"
	ErrProviderResponse   ErrorCode = "LLM_INVALID_RESPONSE"
)

// DomainError represents a domain-specific error. Status, when non-zero,
// overrides the default HTTP status derived from the code (the same code can
// surface with different statuses depending on the operation).
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Status  int       `json:"-"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Detail:  e.Detail,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithStatus sets an explicit HTTP status for this error instance.
func (e *DomainError) WithStatus(status int) *DomainError {
	e.Status = status
	return e
}

// WithDetail attaches caller-facing detail text.
func (e *DomainError) WithDetail(detail string) *DomainError {
	e.Detail = detail
	return e
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

func NewDatabaseError(message string, cause error) *DomainError {
	return NewError(ErrDatabase, message, cause)
}

func NewNoTablesError() *DomainError {
	return NewError(ErrNoTables, "No tables have been created yet. Create tables first.", nil)
}

func NewProblemNotFoundError(problemID int64) *DomainError {
	return NewError(ErrProblemNotFound, fmt.Sprintf("Problem not found with ID: %d", problemID), nil)
}

func NewTableCreationError(cause error) *DomainError {
	return NewError(ErrTableCreation, "Failed to create learning tables", cause)
}

func NewProblemGenerationError(cause error) *DomainError {
	return NewError(ErrProblemGeneration, "Failed to generate a problem", cause)
}

func NewProviderResponseError(detail string, cause error) *DomainError {
	e := NewError(ErrProviderResponse, "Generation provider returned an unusable response", cause)
	e.Detail = detail
	return e
}

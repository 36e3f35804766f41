package middleware

import (
	"errors"
	"net/http"

	"sqldojo/internal/domain"
	"sqldojo/internal/dto"
	"sqldojo/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ValidationErrorResponse represents a request validation failure
type ValidationErrorResponse struct {
	Error  dto.ErrorBody            `json:"error"`
	Fields []domain.ValidationError `json:"fields"`
}

// ErrorHandler is a centralized error handling middleware. Domain errors map
// to their HTTP statuses and the shared error body shape; anything unknown
// is logged with full context and surfaces as a sanitized INTERNAL_ERROR.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request validation failed",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Error: dto.ErrorBody{
					Code:    string(domain.ErrValidation),
					Message: "Request validation failed",
				},
				Fields: validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := domainErr.Status
			if statusCode == 0 {
				statusCode = statusFromCode(domainErr.Code)
			}

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Error: dto.ErrorBody{
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Detail:  domainErr.Detail,
				},
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: dto.ErrorBody{
					Code:    "HTTP_ERROR",
					Message: fiberErr.Message,
				},
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: dto.ErrorBody{
				Code:    string(domain.ErrInternal),
				Message: "Internal server error",
			},
		})
	}
}

// statusFromCode maps domain error codes to default HTTP status codes.
func statusFromCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrNotFound, domain.ErrProblemNotFound, domain.ErrNoTables:
		return http.StatusNotFound
	case domain.ErrValidation, domain.ErrInvalidSQL,
		domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.ErrProviderConnection, domain.ErrProviderTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package handler

import (
	"sqldojo/internal/dto"
	"sqldojo/internal/service"
	"sqldojo/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProblemHandler handles the learning-flow HTTP requests
type ProblemHandler struct {
	service   service.LifecycleService
	validator *validation.Validator
}

// NewProblemHandler creates a new ProblemHandler instance
func NewProblemHandler(service service.LifecycleService, validator *validation.Validator) *ProblemHandler {
	return &ProblemHandler{
		service:   service,
		validator: validator,
	}
}

// CreateTables godoc
// @Summary Create learning tables
// @Description Drops the current learning tables and generates a fresh themed schema with sample data
// @Tags tables
// @Accept json
// @Produce json
// @Param request body dto.CreateTablesRequest false "Optional theme instruction"
// @Success 200 {object} dto.CreateTablesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /create-tables [post]
func (h *ProblemHandler) CreateTables(c *fiber.Ctx) error {
	var req dto.CreateTablesRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidatePrompt(req.Prompt); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ResetSchema(c.UserContext(), req.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetTableSchemas godoc
// @Summary Get current table schemas
// @Description Returns the structural description of the current learning tables
// @Tags tables
// @Produce json
// @Success 200 {object} dto.TableSchemasResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /table-schemas [get]
func (h *ProblemHandler) GetTableSchemas(c *fiber.Ctx) error {
	resp, err := h.service.DescribeSchema(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateProblem godoc
// @Summary Generate a new problem
// @Description Generates a problem against the current tables and returns the result the learner must reproduce
// @Tags problems
// @Accept json
// @Produce json
// @Param request body dto.GenerateProblemRequest false "Optional problem instruction"
// @Success 200 {object} dto.GenerateProblemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-problem [post]
func (h *ProblemHandler) GenerateProblem(c *fiber.Ctx) error {
	var req dto.GenerateProblemRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidatePrompt(req.Prompt); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateProblem(c.UserContext(), req.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CheckAnswer godoc
// @Summary Check a candidate answer
// @Description Grades the submitted SELECT statement against the problem's captured result
// @Tags problems
// @Accept json
// @Produce json
// @Param request body dto.CheckAnswerRequest true "Candidate answer"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /check-answer [post]
func (h *ProblemHandler) CheckAnswer(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := h.validator.ValidateCheckAnswerRequest(req.Context.ProblemID, req.Context.UserSQL, req.Prompt); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.CheckAnswer(c.UserContext(), req.Context.ProblemID, req.Context.UserSQL, req.Prompt)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Health godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *ProblemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

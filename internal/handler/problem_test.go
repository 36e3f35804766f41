package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sqldojo/internal/domain"
	"sqldojo/internal/dto"
	"sqldojo/internal/middleware"
	"sqldojo/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) ResetSchema(ctx context.Context, themeHint string) (*dto.CreateTablesResponse, error) {
	args := m.Called(ctx, themeHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateTablesResponse), args.Error(1)
}

func (m *MockLifecycleService) DescribeSchema(ctx context.Context) (*dto.TableSchemasResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TableSchemasResponse), args.Error(1)
}

func (m *MockLifecycleService) GenerateProblem(ctx context.Context, promptHint string) (*dto.GenerateProblemResponse, error) {
	args := m.Called(ctx, promptHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GenerateProblemResponse), args.Error(1)
}

func (m *MockLifecycleService) CheckAnswer(ctx context.Context, problemID int64, userSQL, promptHint string) (*dto.CheckAnswerResponse, error) {
	args := m.Called(ctx, problemID, userSQL, promptHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckAnswerResponse), args.Error(1)
}

func setupApp(svc *MockLifecycleService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewProblemHandler(svc, validation.NewValidator())
	app.Post("/api/create-tables", h.CreateTables)
	app.Get("/api/table-schemas", h.GetTableSchemas)
	app.Post("/api/generate-problem", h.GenerateProblem)
	app.Post("/api/check-answer", h.CheckAnswer)
	app.Get("/healthz", h.Health)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}

func TestCreateTables(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("ResetSchema", mock.Anything, "library").
		Return(&dto.CreateTablesResponse{Success: true, Theme: "library"}, nil)
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/create-tables", dto.CreateTablesRequest{Prompt: "library"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.CreateTablesResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, "library", body.Theme)
}

func TestCreateTables_PromptTooLong(t *testing.T) {
	svc := new(MockLifecycleService)
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/create-tables", dto.CreateTablesRequest{Prompt: strings.Repeat("a", 1001)})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "ResetSchema", mock.Anything, mock.Anything)
}

func TestGetTableSchemas_NoTables(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("DescribeSchema", mock.Anything).Return(nil, domain.NewNoTablesError())
	app := setupApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/table-schemas", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_TABLES", body.Error.Code)
}

func TestGetTableSchemas(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("DescribeSchema", mock.Anything).Return(&dto.TableSchemasResponse{
		Schemas: []domain.TableSchema{{
			TableName: "employees",
			Columns:   []domain.ColumnSchema{{Name: "id", Type: "INTEGER", IsPrimaryKey: true}},
		}},
		TableCount: 1,
		TableNames: []string{"employees"},
	}, nil)
	app := setupApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/table-schemas", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.TableSchemasResponse](t, resp)
	assert.Equal(t, 1, body.TableCount)
	assert.Equal(t, "employees", body.Schemas[0].TableName)
}

func TestGenerateProblem_NoTablesIsBadRequest(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("GenerateProblem", mock.Anything, "").
		Return(nil, domain.NewNoTablesError().WithStatus(http.StatusBadRequest))
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/generate-problem", dto.GenerateProblemRequest{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_TABLES", body.Error.Code)
}

func TestGenerateProblem(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("GenerateProblem", mock.Anything, "joins please").
		Return(&dto.GenerateProblemResponse{
			ProblemID:   42,
			Result:      []domain.Row{{"name": "Tanaka"}},
			RowCount:    1,
			ColumnNames: []string{"name"},
			Difficulty:  2,
		}, nil)
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/generate-problem", dto.GenerateProblemRequest{Prompt: "joins please"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.GenerateProblemResponse](t, resp)
	assert.Equal(t, int64(42), body.ProblemID)
	assert.Equal(t, []string{"name"}, body.ColumnNames)
}

func TestCheckAnswer_MissingUserSQL(t *testing.T) {
	svc := new(MockLifecycleService)
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/check-answer", dto.CheckAnswerRequest{
		Context: dto.CheckAnswerContext{ProblemID: 1},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "CheckAnswer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckAnswer_ProblemNotFound(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("CheckAnswer", mock.Anything, int64(99), "SELECT 1", "").
		Return(nil, domain.NewProblemNotFoundError(99))
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/check-answer", dto.CheckAnswerRequest{
		Context: dto.CheckAnswerContext{ProblemID: 99, UserSQL: "SELECT 1"},
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "PROBLEM_NOT_FOUND", body.Error.Code)
}

func TestCheckAnswer_WrongAnswerIsStillOK(t *testing.T) {
	svc := new(MockLifecycleService)
	svc.On("CheckAnswer", mock.Anything, int64(1), "SELECT name FROM employees", "").
		Return(&dto.CheckAnswerResponse{
			IsCorrect: false,
			Message:   "Not quite. row count differs: expected 3 rows, got 2.",
			Hint:      "row count differs: expected 3 rows, got 2",
		}, nil)
	app := setupApp(svc)

	resp := postJSON(t, app, "/api/check-answer", dto.CheckAnswerRequest{
		Context: dto.CheckAnswerContext{ProblemID: 1, UserSQL: "SELECT name FROM employees"},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.CheckAnswerResponse](t, resp)
	assert.False(t, body.IsCorrect)
	assert.Contains(t, body.Hint, "expected 3 rows")
}

func TestHealth(t *testing.T) {
	svc := new(MockLifecycleService)
	app := setupApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", body.Status)
}

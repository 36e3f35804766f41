package service

import (
	"context"
	"encoding/json"
	"time"

	"sqldojo/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockProblemRepository ---
type MockProblemRepository struct {
	mock.Mock
}

func (m *MockProblemRepository) SaveProblem(ctx context.Context, problem *domain.Problem) (int64, error) {
	args := m.Called(ctx, problem)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProblemRepository) GetProblem(ctx context.Context, id int64) (*domain.Problem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Problem), args.Error(1)
}

func (m *MockProblemRepository) DeactivateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockSessionStateRepository ---
// Backed by a real map so the difficulty adaptation flows read what prior
// calls in the same test wrote.
type MockSessionStateRepository struct {
	values map[string]json.RawMessage
}

func NewMockSessionStateRepository() *MockSessionStateRepository {
	return &MockSessionStateRepository{values: make(map[string]json.RawMessage)}
}

func (m *MockSessionStateRepository) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, ok := m.values[key]
	return raw, ok, nil
}

func (m *MockSessionStateRepository) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *MockSessionStateRepository) Seed(key string, value any) {
	raw, _ := json.Marshal(value)
	m.values[key] = raw
}

// --- MockWorkspaceRepository ---
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Reset(ctx context.Context, statements []string) error {
	args := m.Called(ctx, statements)
	return args.Error(0)
}

// --- MockSchemaDescriber ---
type MockSchemaDescriber struct {
	mock.Mock
}

func (m *MockSchemaDescriber) Describe(ctx context.Context) ([]domain.TableSchema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableSchema), args.Error(1)
}

// --- MockGenerationProvider ---
type MockGenerationProvider struct {
	mock.Mock
}

func (m *MockGenerationProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, temperature, maxTokens)
	return args.String(0), args.Error(1)
}

// --- MockQueryExecutor ---
type MockQueryExecutor struct {
	mock.Mock
}

func (m *MockQueryExecutor) Execute(ctx context.Context, query string, timeout time.Duration, rowCap int) (*domain.ResultSet, error) {
	args := m.Called(ctx, query, timeout, rowCap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultSet), args.Error(1)
}

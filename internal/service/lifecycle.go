// Package service contains the problem lifecycle manager: schema resets,
// problem generation and answer checking. It orchestrates the guard, the
// executor, the comparator and the generation provider; every external
// effect it needs is injected, so the whole flow is testable with fakes.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"sqldojo/internal/comparator"
	"sqldojo/internal/config"
	"sqldojo/internal/domain"
	"sqldojo/internal/dto"
	"sqldojo/internal/executor"
	"sqldojo/internal/logger"
	"sqldojo/internal/port"
	"sqldojo/internal/prompt"
	"sqldojo/internal/sqlguard"

	"go.uber.org/zap"
)

// maxGenerationAttempts bounds problem generation. Attempts after the first
// use a simplified prompt to favor a query that actually executes.
const maxGenerationAttempts = 3

// displayRowLimit caps the result copies echoed back on a wrong answer.
const displayRowLimit = 10

// QueryExecutor runs one validated statement under a timeout and row cap.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, timeout time.Duration, rowCap int) (*domain.ResultSet, error)
}

// LifecycleService defines the operations behind the HTTP surface.
type LifecycleService interface {
	ResetSchema(ctx context.Context, themeHint string) (*dto.CreateTablesResponse, error)
	DescribeSchema(ctx context.Context) (*dto.TableSchemasResponse, error)
	GenerateProblem(ctx context.Context, promptHint string) (*dto.GenerateProblemResponse, error)
	CheckAnswer(ctx context.Context, problemID int64, userSQL, promptHint string) (*dto.CheckAnswerResponse, error)
}

// lifecycleService implements LifecycleService
type lifecycleService struct {
	problems  domain.ProblemRepository
	session   domain.SessionStateRepository
	workspace domain.WorkspaceRepository
	describer domain.SchemaDescriber
	provider  port.GenerationProvider
	executor  QueryExecutor
	cfg       *config.Config
	retry     RetryPolicy
	rng       *rand.Rand
}

// NewLifecycleService creates a new instance of lifecycleService. The retry
// policy applies to provider calls only; rng drives theme selection and may
// be seeded for deterministic tests (nil seeds from the clock).
func NewLifecycleService(
	problems domain.ProblemRepository,
	session domain.SessionStateRepository,
	workspace domain.WorkspaceRepository,
	describer domain.SchemaDescriber,
	provider port.GenerationProvider,
	queryExecutor QueryExecutor,
	cfg *config.Config,
	retry RetryPolicy,
	rng *rand.Rand,
) LifecycleService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &lifecycleService{
		problems:  problems,
		session:   session,
		workspace: workspace,
		describer: describer,
		provider:  provider,
		executor:  queryExecutor,
		cfg:       cfg,
		retry:     retry,
		rng:       rng,
	}
}

// ResetSchema drops every learner-facing table and rebuilds the workspace
// from provider-generated DDL and sample data, all inside one transaction.
// Existing problems are deactivated and the difficulty state starts over.
// Concurrent resets are not serialized against each other; the single
// transaction keeps each reset individually atomic, but two racing calls
// leave whichever committed last.
func (s *lifecycleService) ResetSchema(ctx context.Context, themeHint string) (*dto.CreateTablesResponse, error) {
	theme := themeHint
	if theme == "" {
		theme = prompt.Themes[s.rng.Intn(len(prompt.Themes))]
	}

	var generated *schemaGenResult
	err := s.retry.Do(ctx, func(attempt int) error {
		if attempt > 0 {
			logger.Get().Warn("Retrying schema generation",
				zap.Int("attempt", attempt+1),
				zap.String("theme", theme),
			)
		}
		systemPrompt, userPrompt := prompt.SchemaGeneration(theme, themeHint)
		raw, err := s.complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			return err
		}
		parsed, err := parseSchemaGenResult(raw)
		if err != nil {
			return err
		}
		generated = parsed
		return nil
	})
	if err != nil {
		return nil, domain.NewTableCreationError(err)
	}

	if generated.Theme != "" {
		theme = generated.Theme
	}

	if err := s.workspace.Reset(ctx, generated.SQLStatements); err != nil {
		return nil, domain.NewTableCreationError(err)
	}

	if err := s.problems.DeactivateAll(ctx); err != nil {
		return nil, domain.NewDatabaseError("Failed to deactivate existing problems", err)
	}

	s.setSessionValue(ctx, domain.SessionKeyTheme, theme)
	s.setSessionValue(ctx, domain.SessionKeyDifficulty, domain.MinDifficulty)
	s.setSessionValue(ctx, domain.SessionKeyHistory, []bool{})

	logger.Get().Info("Workspace reset completed",
		zap.String("theme", theme),
		zap.Int("statement_count", len(generated.SQLStatements)),
	)

	return &dto.CreateTablesResponse{
		Success: true,
		Theme:   theme,
		Message: generated.Description,
	}, nil
}

// DescribeSchema returns the structural description of the current tables.
func (s *lifecycleService) DescribeSchema(ctx context.Context) (*dto.TableSchemasResponse, error) {
	schemas, err := s.describer.Describe(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(schemas))
	for _, table := range schemas {
		names = append(names, table.TableName)
	}

	theme := s.currentTheme(ctx)
	if theme == "" {
		theme = inferTheme(names)
	}

	return &dto.TableSchemasResponse{
		Schemas:    schemas,
		Theme:      theme,
		TableCount: len(schemas),
		TableNames: names,
	}, nil
}

// themeMarkers maps characteristic table names to the theme they suggest.
// Used only when session state carries no theme, e.g. after a restart
// against a database reset by an earlier process.
var themeMarkers = map[string]string{
	"employees": "employee management",
	"books":     "library",
	"loans":     "library",
	"orders":    "e-commerce",
	"products":  "e-commerce",
	"students":  "school",
	"courses":   "school",
	"patients":  "hospital",
	"doctors":   "hospital",
}

func inferTheme(tableNames []string) string {
	for _, name := range tableNames {
		if theme, ok := themeMarkers[strings.ToLower(name)]; ok {
			return theme
		}
	}
	return ""
}

// GenerateProblem synthesizes a new problem against the current tables.
// Difficulty targets the rolling correctness history; provider output is
// validated and executed before persisting, regenerating with a simplified
// prompt when the query fails or yields an out-of-range row count.
func (s *lifecycleService) GenerateProblem(ctx context.Context, promptHint string) (*dto.GenerateProblemResponse, error) {
	schemas, err := s.describer.Describe(ctx)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.ErrNoTables {
			// On this path an empty workspace is a caller mistake, not a
			// missing resource.
			return nil, domainErr.WithStatus(http.StatusBadRequest)
		}
		return nil, err
	}

	difficulty := s.targetDifficulty(ctx)

	var (
		generated *problemGenResult
		result    *domain.ResultSet
		lastErr   error
	)
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		simplified := attempt > 0
		if simplified {
			logger.Get().Warn("Retrying problem generation with simplified prompt",
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
		}

		systemPrompt, userPrompt := prompt.ProblemGeneration(schemas, difficulty, promptHint, simplified)
		raw, err := s.complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			lastErr = err
			continue
		}
		parsed, err := parseProblemGenResult(raw)
		if err != nil {
			lastErr = err
			continue
		}

		if rejection := sqlguard.Validate(parsed.CorrectSQL); rejection != nil {
			lastErr = fmt.Errorf("generated SQL rejected: %s", rejection.Message)
			continue
		}

		rows, err := s.executor.Execute(ctx, parsed.CorrectSQL, s.cfg.SQL.GenerationTimeout, s.cfg.SQL.MaxResultRows+1)
		if err != nil {
			lastErr = fmt.Errorf("generated SQL failed to execute: %w", err)
			continue
		}
		if rows.RowCount() == 0 {
			lastErr = errors.New("generated SQL returned no rows")
			continue
		}
		if rows.RowCount() > s.cfg.SQL.MaxResultRows {
			lastErr = fmt.Errorf("generated SQL returned more than %d rows", s.cfg.SQL.MaxResultRows)
			continue
		}

		generated = parsed
		result = rows
		break
	}
	if generated == nil {
		return nil, domain.NewProblemGenerationError(lastErr)
	}

	problem := &domain.Problem{
		Theme:        s.currentTheme(ctx),
		CorrectSQL:   generated.CorrectSQL,
		Result:       result,
		Difficulty:   difficulty,
		Category:     generated.Category,
		TableSchemas: schemas,
		IsActive:     true,
	}
	id, err := s.problems.SaveProblem(ctx, problem)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to save problem", err)
	}

	s.setSessionValue(ctx, domain.SessionKeyDifficulty, difficulty)

	logger.Get().Info("Problem generated",
		zap.Int64("problem_id", id),
		zap.Int("difficulty", difficulty),
		zap.String("category", generated.Category),
		zap.Int("row_count", result.RowCount()),
	)

	return &dto.GenerateProblemResponse{
		ProblemID:   id,
		Result:      result.Rows,
		RowCount:    result.RowCount(),
		ColumnNames: result.Columns,
		Difficulty:  difficulty,
	}, nil
}

// CheckAnswer grades one candidate SQL against the problem's captured
// result. Rejected, failing and wrong candidates all come back as a 200
// outcome with is_correct false; only an unknown problem id is an error.
func (s *lifecycleService) CheckAnswer(ctx context.Context, problemID int64, userSQL, promptHint string) (*dto.CheckAnswerResponse, error) {
	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to load problem", err)
	}
	if problem == nil {
		return nil, domain.NewProblemNotFoundError(problemID)
	}

	if rejection := sqlguard.ValidateWithLimit(userSQL, s.cfg.SQL.MaxQueryLength); rejection != nil {
		s.recordOutcome(ctx, false)
		return &dto.CheckAnswerResponse{
			IsCorrect:    false,
			Message:      rejection.Message,
			ErrorType:    "validation",
			ErrorMessage: rejection.Message,
		}, nil
	}

	actual, err := s.executor.Execute(ctx, userSQL, s.cfg.SQL.CheckTimeout, s.cfg.SQL.MaxResultRows)
	if err != nil {
		s.recordOutcome(ctx, false)
		return s.executionFailureOutcome(ctx, userSQL, err), nil
	}

	report := comparator.Diff(problem.Result, actual)
	s.recordOutcome(ctx, report.Equivalent)

	message, hint := s.feedback(ctx, report.Equivalent, userSQL, problem.CorrectSQL, report)

	if report.Equivalent {
		return &dto.CheckAnswerResponse{
			IsCorrect: true,
			Message:   message,
		}, nil
	}

	return &dto.CheckAnswerResponse{
		IsCorrect:      false,
		Message:        message,
		Hint:           hint,
		UserResult:     actual.Truncate(displayRowLimit).Rows,
		ExpectedResult: problem.Result.Truncate(displayRowLimit).Rows,
	}, nil
}

// executionFailureOutcome maps a typed execution failure into a graded
// outcome, attaching a best-effort explanation hint for non-timeout errors.
func (s *lifecycleService) executionFailureOutcome(ctx context.Context, userSQL string, err error) *dto.CheckAnswerResponse {
	var execErr *executor.ExecutionError
	if !errors.As(err, &execErr) {
		execErr = &executor.ExecutionError{Kind: executor.KindRuntime, Message: err.Error(), Cause: err}
	}

	outcome := &dto.CheckAnswerResponse{
		IsCorrect:    false,
		ErrorMessage: execErr.Message,
	}

	switch execErr.Kind {
	case executor.KindTimeout:
		outcome.ErrorType = "timeout"
		outcome.Message = "Your query took too long to run. Try narrowing it down."
		return outcome
	case executor.KindSyntax:
		outcome.ErrorType = "syntax"
		outcome.Message = "Your query has a syntax error."
	default:
		outcome.ErrorType = "execution"
		outcome.Message = "Your query failed to execute."
	}

	outcome.Hint = s.explainError(ctx, userSQL, execErr.Message)
	return outcome
}

// explainError asks the provider for a plain-language explanation of a
// database error. Falls back to a fixed hint so the learner always gets one.
func (s *lifecycleService) explainError(ctx context.Context, userSQL, dbError string) string {
	systemPrompt, userPrompt := prompt.ExplainError(userSQL, dbError)
	raw, err := s.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		logger.Get().Warn("Error explanation unavailable, using fallback hint", zap.Error(err))
		return "Check that every table and column in your query exists in the current schema."
	}
	return raw
}

// feedback produces the learner-facing message, degrading to templated text
// built from the comparison report when the provider fails.
func (s *lifecycleService) feedback(ctx context.Context, isCorrect bool, userSQL, correctSQL string, report *comparator.ComparisonReport) (message, hint string) {
	systemPrompt, userPrompt := prompt.Feedback(isCorrect, userSQL, correctSQL, report)
	raw, err := s.complete(ctx, systemPrompt, userPrompt)
	if err == nil {
		if parsed, parseErr := parseFeedbackResult(raw); parseErr == nil {
			return parsed.Feedback, parsed.Hint
		} else {
			err = parseErr
		}
	}
	logger.Get().Warn("Feedback generation unavailable, using templated fallback", zap.Error(err))

	if isCorrect {
		return "Correct! Your query reproduces the expected result.", ""
	}
	diff := prompt.RenderReport(report)
	return fmt.Sprintf("Not quite. %s.", diff), diff
}

// complete wraps a provider call in its own timeout.
func (s *lifecycleService) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LLM.Timeout)
	defer cancel()
	return s.provider.Complete(ctx, systemPrompt, userPrompt, s.cfg.LLM.Temperature, s.cfg.LLM.MaxTokens)
}

// targetDifficulty reads the session state and applies the adaptation rule.
// Missing or unreadable state falls back to the minimum level.
func (s *lifecycleService) targetDifficulty(ctx context.Context) int {
	current := domain.MinDifficulty
	if raw, ok, err := s.session.Get(ctx, domain.SessionKeyDifficulty); err == nil && ok {
		var stored int
		if json.Unmarshal(raw, &stored) == nil && stored != 0 {
			current = stored
		}
	}
	return nextDifficulty(current, s.answerHistory(ctx))
}

func (s *lifecycleService) answerHistory(ctx context.Context) []bool {
	raw, ok, err := s.session.Get(ctx, domain.SessionKeyHistory)
	if err != nil || !ok {
		return nil
	}
	var history []bool
	if err := json.Unmarshal(raw, &history); err != nil {
		logger.Get().Warn("Answer history unreadable, starting over", zap.Error(err))
		return nil
	}
	return history
}

// recordOutcome appends one correctness outcome to the rolling history.
// Best-effort; grading never fails because bookkeeping did.
func (s *lifecycleService) recordOutcome(ctx context.Context, correct bool) {
	history := append(s.answerHistory(ctx), correct)
	if len(history) > domain.HistoryLimit {
		history = history[len(history)-domain.HistoryLimit:]
	}
	s.setSessionValue(ctx, domain.SessionKeyHistory, history)
}

func (s *lifecycleService) currentTheme(ctx context.Context) string {
	raw, ok, err := s.session.Get(ctx, domain.SessionKeyTheme)
	if err != nil || !ok {
		return ""
	}
	var theme string
	if json.Unmarshal(raw, &theme) != nil {
		return ""
	}
	return theme
}

func (s *lifecycleService) setSessionValue(ctx context.Context, key string, value any) {
	if err := s.session.Set(ctx, key, value); err != nil {
		logger.Get().Warn("Failed to persist session state",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

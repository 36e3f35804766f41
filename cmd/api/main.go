// @title SQL Dojo API
// @version 1.0
// @description Backend for a SQL learning app: themed practice tables, generated problems and answer grading.
// @host localhost:8080
// @BasePath /api
// @schemes http
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sqldojo/internal/adapter/llmgen"
	"sqldojo/internal/config"
	"sqldojo/internal/database"
	"sqldojo/internal/executor"
	"sqldojo/internal/handler"
	"sqldojo/internal/introspector"
	"sqldojo/internal/logger"
	"sqldojo/internal/middleware"
	"sqldojo/internal/repository"
	"sqldojo/internal/service"
	"sqldojo/internal/validation"

	_ "sqldojo/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		requestID, _ := c.Locals("request_id").(string)
		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("request_id", requestID),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	provider, err := llmgen.NewOpenAIProvider(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create generation provider", zap.Error(err))
	}
	appLogger.Info("Generation provider initialized",
		zap.String("model", cfg.LLM.Model),
		zap.String("base_url", cfg.LLM.BaseURL),
	)

	// Initialize repositories
	problemRepository := repository.NewProblemDatabaseAdapter(db)
	sessionRepository := repository.NewSessionStateDatabaseAdapter(db)
	workspaceRepository := repository.NewWorkspaceDatabaseAdapter(db)

	// Initialize core components
	schemaIntrospector := introspector.NewIntrospector(db)
	queryExecutor := executor.NewExecutor(db)

	lifecycleService := service.NewLifecycleService(
		problemRepository,
		sessionRepository,
		workspaceRepository,
		schemaIntrospector,
		provider,
		queryExecutor,
		cfg,
		service.RetryPolicy{
			MaxAttempts: cfg.LLM.MaxRetries,
			BaseDelay:   cfg.LLM.RetryDelay,
			Jitter:      0.2,
		},
		nil,
	)

	problemHandler := handler.NewProblemHandler(lifecycleService, validation.NewValidator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", problemHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Post("/create-tables", problemHandler.CreateTables)
	apiGroup.Get("/table-schemas", problemHandler.GetTableSchemas)
	apiGroup.Post("/generate-problem", problemHandler.GenerateProblem)
	apiGroup.Post("/check-answer", problemHandler.CheckAnswer)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-ctx.Done():
			return ctx.Err()
		}
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Server terminated", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wikiquiz/internal/adapter/generation"
	"wikiquiz/internal/config"
	"wikiquiz/internal/database"
	"wikiquiz/internal/domain"
	"wikiquiz/internal/fetcher"
	"wikiquiz/internal/handler"
	"wikiquiz/internal/logger"
	"wikiquiz/internal/middleware"
	"wikiquiz/internal/quizgen"
	"wikiquiz/internal/repository"
	"wikiquiz/internal/service"
	"wikiquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
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

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize the text-generation backend. A missing API key is not fatal:
	// the pipeline degrades to the deterministic fallback generator.
	var generator domain.TextGenerator
	switch cfg.Generation.Source {
	case "gemini":
		appLogger.Info("Initializing Gemini generation client",
			zap.String("model", cfg.Generation.Gemini.Model),
			zap.Bool("api_key_set", cfg.Generation.Gemini.APIKey != ""))
		generator = generation.NewGeminiClient(cfg.Generation.Gemini, appLogger)
	case "openai":
		appLogger.Info("Initializing OpenAI generation client",
			zap.String("model", cfg.Generation.OpenAI.Model),
			zap.Bool("api_key_set", cfg.Generation.OpenAI.APIKey != ""))
		generator, err = generation.NewOpenAIGenerator(cfg.Generation.OpenAI, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI generation client", zap.Error(err))
		}
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported generation source: %s. Please check GENERATION_SOURCE in config.", cfg.Generation.Source))
	}
	if !generator.Available() {
		appLogger.Warn("No generation API key configured; quizzes will use the fallback generator only")
	}

	// Connect to database and ensure schema
	db, err := database.NewSQLXSQLiteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	historyRepository := repository.NewHistoryDatabaseAdapter(db)

	// Initialize pipeline components
	articleFetcher := fetcher.New()
	fallbackGenerator := quizgen.NewFallbackGenerator()
	shuffler := quizgen.NewShuffler(nil)

	// Initialize services
	quizService := service.NewQuizService(articleFetcher, generator, fallbackGenerator, shuffler, historyRepository)
	appLogger.Info("QuizService initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService, validation.NewValidator())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Routes
	app.Get("/", quizHandler.Status)
	app.Post("/quiz", quizHandler.GenerateQuiz)
	app.Get("/quiz/:id", quizHandler.GetQuizByID)
	app.Get("/history", quizHandler.GetHistory)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

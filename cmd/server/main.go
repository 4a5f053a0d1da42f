package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tofik-Raza/HireSense-AI/internal/callflow"
	"github.com/Tofik-Raza/HireSense-AI/internal/completion"
	"github.com/Tofik-Raza/HireSense-AI/internal/config"
	"github.com/Tofik-Raza/HireSense-AI/internal/handlers"
	"github.com/Tofik-Raza/HireSense-AI/internal/jobs"
	"github.com/Tofik-Raza/HireSense-AI/internal/llm"
	_ "github.com/Tofik-Raza/HireSense-AI/internal/llm/gemini"
	"github.com/Tofik-Raza/HireSense-AI/internal/models"
	"github.com/Tofik-Raza/HireSense-AI/internal/pipeline"
	"github.com/Tofik-Raza/HireSense-AI/internal/repositories"
	"github.com/Tofik-Raza/HireSense-AI/internal/routers"
	"github.com/Tofik-Raza/HireSense-AI/internal/stt"
	"github.com/Tofik-Raza/HireSense-AI/internal/telephony"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase opens the configured database and migrates the schema.
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	gormConfig := &gorm.Config{TranslateError: true}
	switch cfg.DatabaseDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormConfig)
	default:
		host := getEnv("POSTGRES_HOST", "localhost")
		user := getEnv("POSTGRES_USER", "postgres")
		password := getEnv("POSTGRES_PASSWORD", "postgres")
		dbname := getEnv("POSTGRES_DB", "screener")
		port := getEnv("POSTGRES_PORT", "5432")
		sslmode := getEnv("POSTGRES_SSLMODE", "disable")

		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, user, password, dbname, port, sslmode)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.Interview{},
		&models.Question{},
		&models.Answer{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func registerRoutes(
	router *chi.Mux,
	interviewHandler *handlers.InterviewHandler,
	resultsHandler *handlers.ResultsHandler,
	voiceHandler *handlers.VoiceHandler,
	recordingHandler *handlers.RecordingHandler,
	healthHandler *handlers.HealthHandler,
) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, interviewHandler, resultsHandler)
	routers.WebhookRoutes(router, voiceHandler, recordingHandler)
}

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("database", cfg.DatabaseDriver))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	interviewRepo := &repositories.InterviewRepository{DB: db}
	answerRepo := &repositories.AnswerRepository{DB: db}

	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	twilio := telephony.NewClient(telephony.Config{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	})
	transcriber := stt.NewWhisperClient(cfg.STTEndpoint, cfg.TwilioAccountSID, cfg.TwilioAuthToken)

	aggregator := completion.NewAggregator(interviewRepo, answerRepo, twilio, logger)

	dispatcher := pipeline.NewDispatcher(
		cfg.PipelineWorkers,
		cfg.PipelineQueueSize,
		cfg.PipelineTimeout,
		answerRepo,
		transcriber,
		aiProvider,
		aggregator,
		logger,
	)
	dispatcher.Start()

	sweeper := jobs.NewRetrySweeper(interviewRepo, answerRepo, dispatcher, aggregator, &jobs.SweeperConfig{
		Schedule:    cfg.SweepSchedule,
		StaleAfter:  cfg.StaleAfter,
		MaxAttempts: cfg.MaxAttempts,
	}, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start retry sweeper", zap.Error(err))
	}

	controller := callflow.NewController(interviewRepo, cfg.PublicBaseURL, cfg.MaxRecordingSeconds, logger)

	interviewHandler := handlers.NewInterviewHandler(interviewRepo, aiProvider, twilio, cfg, logger)
	resultsHandler := handlers.NewResultsHandler(interviewRepo, answerRepo, logger)
	voiceHandler := handlers.NewVoiceHandler(controller, logger)
	recordingHandler := handlers.NewRecordingHandler(interviewRepo, answerRepo, dispatcher, logger)
	healthHandler := handlers.NewHealthHandler(db, aiProvider, cfg)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))

	registerRoutes(router, interviewHandler, resultsHandler, voiceHandler, recordingHandler, healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Screener service starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Screener service shutting down...")

	sweeper.Stop()
	dispatcher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Screener service exited")
}

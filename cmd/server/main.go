package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"shepherd/internal/ai"
	"shepherd/internal/auth"
	"shepherd/internal/config"
	"shepherd/internal/handler"
	"shepherd/internal/middleware"
	"shepherd/internal/moderation"
	"shepherd/internal/obs"
	"shepherd/internal/repository/postgres"
	"shepherd/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logOutput := os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = logFile
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token manager for issuing and verifying access tokens
	tokens, err := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	churchRepo := postgres.NewChurchRepository(repoConfig)
	sermonRepo := postgres.NewSermonRepository(repoConfig)
	studyRepo := postgres.NewBibleStudyRepository(repoConfig)
	prayerRepo := postgres.NewPrayerRequestRepository(repoConfig)
	flagRepo := postgres.NewFlaggedContentRepository(repoConfig)

	// AI integrations
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, AI generation requests will fail")
	}
	openAI := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)

	if cfg.ElevenLabsAPIKey == "" {
		logger.Warn("ELEVENLABS_API_KEY not set, audio synthesis requests will fail")
	}
	elevenLabs, err := ai.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.AudioDir, logger)
	if err != nil {
		log.Fatalf("Failed to create speech client: %v", err)
	}

	scanner := moderation.NewScanner(logger)

	// Create services
	authService := service.NewAuthService(userRepo, churchRepo, tokens, logger)
	userService := service.NewUserService(userRepo, churchRepo, logger)
	churchService := service.NewChurchService(churchRepo, logger)
	sermonService := service.NewSermonService(sermonRepo, churchRepo, openAI, elevenLabs, scanner, logger)
	studyService := service.NewBibleStudyService(studyRepo, churchRepo, openAI, scanner, logger)
	prayerService := service.NewPrayerRequestService(prayerRepo, churchRepo, openAI, scanner, logger)
	moderationService := service.NewModerationService(flagRepo, sermonRepo, prayerRepo, scanner, logger)

	// Background moderation sweeps
	scheduler := service.NewScheduler(moderationService, cfg.SermonScanInterval, cfg.PrayerScanInterval, logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	churchHandler := handler.NewChurchHandler(churchService, logger)
	sermonHandler := handler.NewSermonHandler(sermonService, logger)
	studyHandler := handler.NewBibleStudyHandler(studyService, logger)
	prayerHandler := handler.NewPrayerRequestHandler(prayerService, logger)
	moderationHandler := handler.NewModerationHandler(moderationService, logger)
	healthHandler := handler.NewHealthHandler(pool)

	obs.Init()
	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.Handle("GET /metrics", obs.Handler())

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// User routes
	mux.HandleFunc("GET /api/users", userHandler.List)
	mux.HandleFunc("POST /api/users", userHandler.Create)
	mux.HandleFunc("GET /api/users/me", userHandler.Me) // Must come before {id} route
	mux.HandleFunc("GET /api/users/{id}", userHandler.Get)
	mux.HandleFunc("PATCH /api/users/{id}", userHandler.Update)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.Delete)

	// Church routes
	mux.HandleFunc("GET /api/churches", churchHandler.List)
	mux.HandleFunc("POST /api/churches", churchHandler.Create)
	mux.HandleFunc("GET /api/churches/{id}", churchHandler.Get)
	mux.HandleFunc("PATCH /api/churches/{id}", churchHandler.Update)
	mux.HandleFunc("DELETE /api/churches/{id}", churchHandler.Delete)

	// Sermon routes
	mux.HandleFunc("GET /api/sermons", sermonHandler.List)
	mux.HandleFunc("POST /api/sermons", sermonHandler.Create)
	mux.HandleFunc("POST /api/sermons/generate", sermonHandler.Generate) // Must come before {id} route
	mux.HandleFunc("GET /api/sermons/{id}", sermonHandler.Get)
	mux.HandleFunc("PATCH /api/sermons/{id}", sermonHandler.Update)
	mux.HandleFunc("PATCH /api/sermons/{id}/status", sermonHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/sermons/{id}", sermonHandler.Delete)
	mux.HandleFunc("POST /api/sermons/{id}/audio", sermonHandler.SynthesizeAudio)

	// Bible study routes
	mux.HandleFunc("GET /api/bible-studies", studyHandler.List)
	mux.HandleFunc("POST /api/bible-studies", studyHandler.Create)
	mux.HandleFunc("GET /api/bible-studies/{id}", studyHandler.Get)
	mux.HandleFunc("PATCH /api/bible-studies/{id}", studyHandler.Update)
	mux.HandleFunc("PATCH /api/bible-studies/{id}/status", studyHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/bible-studies/{id}", studyHandler.Delete)
	mux.HandleFunc("POST /api/bible-studies/{id}/explanations", studyHandler.GenerateExplanations)

	// Prayer request routes
	mux.HandleFunc("GET /api/prayer-requests", prayerHandler.List)
	mux.HandleFunc("POST /api/prayer-requests", prayerHandler.Create)
	mux.HandleFunc("GET /api/prayer-requests/{id}", prayerHandler.Get)
	mux.HandleFunc("PATCH /api/prayer-requests/{id}", prayerHandler.Update)
	mux.HandleFunc("PATCH /api/prayer-requests/{id}/status", prayerHandler.UpdateStatus)
	mux.HandleFunc("DELETE /api/prayer-requests/{id}", prayerHandler.Delete)
	mux.HandleFunc("POST /api/prayer-requests/{id}/pray", prayerHandler.Pray)
	mux.HandleFunc("POST /api/prayer-requests/{id}/ai-response", prayerHandler.GenerateResponse)

	// Moderation routes
	mux.HandleFunc("GET /api/moderation/flags", moderationHandler.List)
	mux.HandleFunc("GET /api/moderation/stats", moderationHandler.Stats) // Must come before {id} route
	mux.HandleFunc("GET /api/moderation/flags/{id}", moderationHandler.Get)
	mux.HandleFunc("PATCH /api/moderation/flags/{id}", moderationHandler.Review)
	mux.HandleFunc("POST /api/moderation/check", moderationHandler.Check)
	mux.HandleFunc("POST /api/moderation/flag", moderationHandler.Flag)

	// Synthesized sermon audio
	mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir))))

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RateLimit → Instrument → Logging → Recovery → Auth → Routes
	httpHandler = middleware.Auth(tokens, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)
	httpHandler = middleware.Logging(logger)(httpHandler)
	httpHandler = obs.Instrument(httpHandler)
	httpHandler = middleware.RateLimit(20, 10)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // AI generation calls can run for minutes
		IdleTimeout:  60 * time.Second,
	}

	// Start server, shut down cleanly on SIGINT/SIGTERM
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}
}

package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"cobalt/internal/config"
	"cobalt/internal/handler"
	"cobalt/internal/langmap"
	"cobalt/internal/metrics"
	"cobalt/internal/middleware"
	"cobalt/internal/parser"
	"cobalt/internal/repository/postgres"
	postgresUpload "cobalt/internal/repository/postgres/upload"
	serviceUpload "cobalt/internal/service/upload"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" || cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"parser_enabled", cfg.Upload.ParserEnabled,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	projectRepo := postgresUpload.NewProjectRepository(repoConfig)
	fileRepo := postgresUpload.NewProjectFileRepository(repoConfig)
	additionalFileRepo := postgresUpload.NewAdditionalFileRepository(repoConfig)
	sessionRepo := postgresUpload.NewUploadSessionRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Language registry (embedded YAML)
	languages, err := langmap.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load language registry: %v", err)
	}

	allowedExtensions := cfg.Upload.AllowedExtensions
	if allowedExtensions == nil {
		allowedExtensions = languages.DefaultAllowedExtensions()
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	uploadMetrics := metrics.NewUploadMetrics(registry)

	// Parser service client
	parserClient := parser.NewClient(cfg.Upload.ParserURL, cfg.Upload.ParserTimeout, logger)

	// Upload pipeline
	extractor := serviceUpload.NewArchiveExtractor(cfg.Upload.MaxProjectBytes(), logger)
	classifier := serviceUpload.NewFileClassifier(allowedExtensions, cfg.Upload.MaxFileBytes(), languages, logger)
	parserStrategy := serviceUpload.NewParserStrategy(
		parserClient, cfg.Upload.ParserEnabled,
		projectRepo, fileRepo, sessionRepo, txManager, logger,
	)
	directStrategy := serviceUpload.NewDirectStrategy(
		projectRepo, fileRepo, sessionRepo, txManager, logger,
	)
	uploadService := serviceUpload.NewUploadService(
		extractor, classifier, parserStrategy, directStrategy,
		sessionRepo, uploadMetrics, logger,
	)
	projectService := serviceUpload.NewProjectService(projectRepo, fileRepo, logger)
	additionalFileService := serviceUpload.NewAdditionalFileService(
		projectRepo, additionalFileRepo, cfg.Upload.MaxFileBytes(), logger,
	)

	// Handlers
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	additionalFileHandler := handler.NewAdditionalFileHandler(additionalFileService, logger)
	healthHandler := handler.NewHealthHandler(parserClient, cfg.Upload.ParserEnabled, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /api/upload/project", uploadHandler.UploadProject)
	mux.HandleFunc("GET /api/upload/session/{session_id}", uploadHandler.GetSession)

	mux.HandleFunc("GET /api/upload/projects", projectHandler.ListProjects)
	mux.HandleFunc("GET /api/upload/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("DELETE /api/upload/projects/{id}", projectHandler.DeleteProject)

	mux.HandleFunc("POST /api/upload/projects/{id}/additional_files", additionalFileHandler.AddFile)
	mux.HandleFunc("GET /api/upload/projects/{id}/additional_files", additionalFileHandler.ListFiles)
	mux.HandleFunc("GET /api/upload/projects/{id}/additional_files/{file_id}", additionalFileHandler.GetFile)
	mux.HandleFunc("PUT /api/upload/projects/{id}/additional_files/{file_id}", additionalFileHandler.UpdateFile)
	mux.HandleFunc("DELETE /api/upload/projects/{id}/additional_files/{file_id}", additionalFileHandler.DeleteFile)

	// Middleware chain: CORS -> Recovery -> Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  60 * time.Second, // large archive uploads
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

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

	"focusportal/internal/auth"
	"focusportal/internal/broadcast"
	"focusportal/internal/config"
	"focusportal/internal/filekind"
	"focusportal/internal/handler"
	"focusportal/internal/middleware"
	"focusportal/internal/repository/postgres"
	"focusportal/internal/service"
	"focusportal/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

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

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	questionRepo := postgres.NewQuestionRepository(repoConfig)
	commentRepo := postgres.NewCommentRepository(repoConfig)

	// Initialize file kind registry
	kindRegistry, err := filekind.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize file kind registry: %v", err)
	}
	logger.Info("file kind registry initialized")

	// Connect blob storage
	blobs, err := storage.NewMinioStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect blob storage: %v", err)
	}

	// Start the broadcast hub
	hub := broadcast.NewHub(logger)
	go hub.Run()

	// Create services
	folderService := service.NewFolderService(folderRepo, fileRepo, blobs, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, kindRegistry, blobs, logger)
	questionService := service.NewQuestionService(questionRepo, commentRepo, hub, cfg.FeedTopic, logger)
	commentService := service.NewCommentService(commentRepo, questionRepo, hub, cfg.FeedTopic, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	fileHandler := handler.NewFileHandler(fileService, logger)
	questionHandler := handler.NewQuestionHandler(questionService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	wsHandler := handler.NewWSHandler(hub, cfg.FeedTopic, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("GET /api/folders/{id}/path", folderHandler.GetFolderPath)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.CreateFile)
	mux.HandleFunc("POST /api/files/upload", fileHandler.UploadFile)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("PATCH /api/files/{id}", fileHandler.UpdateFile)
	mux.HandleFunc("PUT /api/files/{id}/content", fileHandler.UpdateFileContent)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	// Question routes
	mux.HandleFunc("POST /api/questions", questionHandler.CreateQuestion)
	mux.HandleFunc("GET /api/questions", questionHandler.ListQuestions)
	mux.HandleFunc("GET /api/questions/{id}", questionHandler.GetQuestion)
	mux.HandleFunc("PATCH /api/questions/{id}", questionHandler.UpdateQuestion)
	mux.HandleFunc("DELETE /api/questions/{id}", questionHandler.DeleteQuestion)
	mux.HandleFunc("PUT /api/questions/{id}/vote", questionHandler.Vote)
	mux.HandleFunc("DELETE /api/questions/{id}/vote", questionHandler.RemoveVote)

	// Comment routes
	mux.HandleFunc("POST /api/questions/{id}/comments", commentHandler.CreateComment)
	mux.HandleFunc("GET /api/questions/{id}/comments", commentHandler.ListComments)
	mux.HandleFunc("PATCH /api/comments/{id}", commentHandler.UpdateComment)
	mux.HandleFunc("DELETE /api/comments/{id}", commentHandler.DeleteComment)
	mux.HandleFunc("PUT /api/comments/{id}/vote", commentHandler.Vote)
	mux.HandleFunc("DELETE /api/comments/{id}/vote", commentHandler.RemoveVote)

	// Live feed
	mux.HandleFunc("GET /ws", wsHandler.Serve)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	root = middleware.Auth(jwtVerifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived websocket connections
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

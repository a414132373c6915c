// Package main initializes and starts the NoteAI HTTP server, setting
// up configuration, logging, database connections, repositories, the
// blob store, collaborator clients, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/Sadok2512/NoteAI-1/internal/ai"
	"github.com/Sadok2512/NoteAI-1/internal/auth"
	"github.com/Sadok2512/NoteAI-1/internal/blob"
	"github.com/Sadok2512/NoteAI-1/internal/config"
	"github.com/Sadok2512/NoteAI-1/internal/db"
	"github.com/Sadok2512/NoteAI-1/internal/logger"
	"github.com/Sadok2512/NoteAI-1/internal/repository"
	"github.com/Sadok2512/NoteAI-1/internal/server/handler/http"
	"github.com/Sadok2512/NoteAI-1/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET must be set")
	}
	jwtSecret := []byte(options.JWTSecret)

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize the blob store.
	var blobs service.BlobStore
	switch options.BlobBackend {
	case "s3":
		blobs, err = blob.NewS3Store(context.Background(), blob.S3Config{
			Region:   options.S3Region,
			Bucket:   options.S3Bucket,
			Endpoint: options.S3Endpoint,
			User:     options.S3User,
			Password: options.S3Password,
		})
		if err != nil {
			zapLogger.Fatal("cannot init s3 blob store", zap.Error(err))
		}
	default:
		blobs, err = blob.NewFSStore(options.UploadDir)
		if err != nil {
			zapLogger.Fatal("cannot init fs blob store", zap.Error(err))
		}
	}

	// Initialize repositories for users and notes.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	noteRepo := repository.NewPostgresNoteRepository(postgresDB)

	// Collaborator clients: speech-to-text and summarization share one
	// OpenAI client; Google verifies federated identity tokens.
	aiClient := ai.New(options.OpenAIKey, options.ChatModel)
	verifier := auth.NewGoogleVerifier(options.GoogleClientID)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, verifier, jwtSecret, options.TokenTTL)
	noteService := service.NewNoteService(noteRepo, blobs, aiClient, aiClient)

	// Create HTTP handlers for auth and note endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	noteHandler := &http.NoteHandler{NoteService: noteService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, noteHandler, jwtSecret, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/handlers"
	"github.com/anonto42/friendbook/backend/internal/mailer"
	"github.com/anonto42/friendbook/backend/internal/router"
	"github.com/anonto42/friendbook/backend/internal/storage"
	"github.com/anonto42/friendbook/backend/pkg/config"
	"github.com/anonto42/friendbook/backend/pkg/firebase"
	"github.com/anonto42/friendbook/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := router.Dependencies{
		Config:   cfg,
		Postgres: db.Postgres,
		Mongo:    db.MongoDB,
		Tokens:   auth.NewTokenSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL),
		Mailer:   mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom),
	}

	// Initialize Firebase; federated login stays disabled without credentials
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		deps.Firebase = firebaseApp.AuthClient
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
	}

	blobs, err := storage.NewS3BlobStore(ctx, storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		PublicURL:       cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}
	deps.Blobs = blobs

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	hub := router.SetupRoutes(e, deps)
	go hub.Serve()
	defer hub.Close()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v\n", err)
	}
}

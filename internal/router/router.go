package router

import (
	"context"
	"log"
	"time"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/handlers"
	"github.com/anonto42/friendbook/backend/internal/middleware"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/anonto42/friendbook/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Dependencies are the external clients the routes are built on.
// Firebase may be nil when federated login is not configured.
type Dependencies struct {
	Config   *config.Config
	Postgres *gorm.DB
	Mongo    *mongo.Database
	Tokens   *auth.TokenSigner
	Blobs    services.BlobStore
	Mailer   services.Mailer
	Firebase services.IDTokenVerifier
}

// SetupRoutes migrates the schema, wires repositories and services, and registers every route.
// The returned hub must be served by the caller.
func SetupRoutes(e *echo.Echo, d Dependencies) *realtime.Hub {
	// AutoMigrate PostgreSQL models
	err := d.Postgres.AutoMigrate(
		&models.Country{},
		&models.City{},
		&models.User{},
		&models.Friendship{},
		&models.Post{},
		&models.PostMedia{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.ForgotPassword{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repositories.EnsureStoryIndexes(ctx, d.Mongo); err != nil {
		log.Fatalf("Failed to create story indexes: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(d.Postgres)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(d.Postgres)
	postRepo := repositories.NewPostgresPostRepository(d.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(d.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(d.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(d.Postgres)
	resetRepo := repositories.NewPostgresForgotPasswordRepository(d.Postgres)
	storyRepo := repositories.NewStoryRepository(d.Mongo)
	locationRepo := repositories.NewPostgresLocationRepository(d.Postgres)

	// --- Real-time channel ---
	hub := realtime.NewHub(d.Tokens)
	e.Any("/socket.io/*", echo.WrapHandler(hub.Handler()))
	log.Println("Socket.io endpoint mounted on /socket.io/.")

	// --- Services ---
	notifications := services.NewNotificationService(notificationRepo, hub)
	accounts := services.NewAccountService(userRepo, resetRepo, d.Tokens, d.Mailer, d.Firebase, d.Config.ResetTokenTTL)
	users := services.NewUserService(userRepo, locationRepo, d.Blobs)
	locations := services.NewLocationService(locationRepo)
	relationships := services.NewRelationshipService(userRepo, friendshipRepo, notifications)
	feed := services.NewFeedService(userRepo, friendshipRepo, postRepo, storyRepo, likeRepo, commentRepo, d.Config.StoryWindow)
	posts := services.NewPostService(userRepo, friendshipRepo, postRepo, likeRepo, commentRepo, d.Blobs, notifications)
	stories := services.NewStoryService(userRepo, friendshipRepo, storyRepo, d.Blobs, notifications)
	comments := services.NewCommentService(userRepo, postRepo, commentRepo, notifications)
	likes := services.NewLikeService(userRepo, postRepo, likeRepo, notifications)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(accounts).RegisterAuthRoutes(authGroup)
	handlers.NewLocationHandler(locations).RegisterLocationRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(d.Tokens))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	handlers.NewUserHandler(users, feed).RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	handlers.NewFriendshipHandler(relationships).RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	handlers.NewPostHandler(posts).RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	handlers.NewStoryHandler(stories).RegisterStoryRoutes(api)
	log.Println("Story routes configured.")

	handlers.NewCommentHandler(comments).RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	handlers.NewLikeHandler(likes).RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	handlers.NewNotificationHandler(notifications).RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return hub
}

package router

import (
	"fmt"
	"time"

	"github.com/anonto42/inkwell/backend/internal/handlers"
	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the connections and settings SetupRoutes wires into the application.
type Deps struct {
	Postgres *gorm.DB
	// Notifications is nil when the inbox is disabled.
	Notifications repositories.NotificationRepository
	// Firebase is nil when Firebase login is disabled.
	Firebase  services.IDTokenVerifier
	JWTSecret string
	JWTTTL    time.Duration
}

// New builds an echo instance with the validator, error handler and all routes.
// Global middleware is left to the caller.
func New(deps Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler
	if err := SetupRoutes(e, deps); err != nil {
		return nil, err
	}
	return e, nil
}

// SetupRoutes migrates the schema and registers every route under /api.
func SetupRoutes(e *echo.Echo, deps Deps) error {
	if err := repositories.Migrate(deps.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Info().Msg("PostgreSQL auto-migrations completed")

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	postRepo := repositories.NewPostgresPostRepository(deps.Postgres)
	tagRepo := repositories.NewPostgresTagRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(deps.Postgres)

	// --- Initialize Services ---
	var (
		notifier            services.Notifier = services.NopNotifier{}
		notificationService *services.NotificationService
	)
	if deps.Notifications != nil {
		notificationService = services.NewNotificationService(deps.Notifications, userRepo)
		notifier = notificationService
	}

	tokens := services.NewTokenManager(deps.JWTSecret, deps.JWTTTL)
	authService := services.NewAuthService(userRepo, tokens, deps.Firebase)
	postService := services.NewPostService(postRepo)
	socialService := services.NewSocialService(userRepo, postRepo, followRepo, likeRepo, bookmarkRepo, notifier)
	feedService := services.NewFeedService(postRepo, userRepo, tagRepo, followRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, notifier)
	userService := services.NewUserService(userRepo, postRepo, followRepo)

	guards := handlers.Guards{
		Optional: middleware.OptionalAuth(authService),
		Required: middleware.RequireAuth(authService),
	}
	api := e.Group("/api")

	handlers.NewAuthHandler(authService).RegisterAuthRoutes(api, guards)
	handlers.NewUserHandler(userService, postService, socialService).RegisterProfileRoutes(api, guards)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api, guards)
	handlers.NewLikeHandler(socialService).RegisterLikeRoutes(api, guards)
	handlers.NewBookmarkHandler(socialService).RegisterBookmarkRoutes(api, guards)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api, guards)
	handlers.NewFollowHandler(socialService).RegisterFollowRoutes(api, guards)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api, guards)

	if notificationService != nil {
		handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api, guards)
		log.Info().Msg("Notification routes configured")
	} else {
		log.Warn().Msg("Notifications disabled: no notification store configured")
	}
	if !authService.FirebaseEnabled() {
		log.Info().Msg("Firebase login disabled")
	}

	log.Info().Int("routes", len(e.Routes())).Msg("All routes configured")
	return nil
}

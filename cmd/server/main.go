package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/router"
	"github.com/anonto42/inkwell/backend/pkg/config"
	"github.com/anonto42/inkwell/backend/pkg/firebase"
	"github.com/anonto42/inkwell/backend/pkg/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.IsDevelopment())

	ctx := context.Background()

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	deps := router.Deps{
		Postgres:  db.Postgres,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
	}

	if db.Mongo != nil {
		notifications := repositories.NewMongoNotificationRepository(db.Mongo.Database(cfg.MongoDatabase))
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := notifications.EnsureIndexes(indexCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to create notification indexes")
		}
		cancel()
		deps.Notifications = notifications
	}

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase")
	}
	if firebaseApp != nil {
		deps.Firebase = firebaseApp.AuthClient
	}

	e, err := router.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}
	config.SetupMiddleware(e, cfg)

	errChannel := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChannel <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errChannel:
		log.Error().Err(err).Msg("Server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down the server")
	} else {
		log.Info().Msg("Server gracefully shut down")
	}
}

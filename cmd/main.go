package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/torneolink/backend/config"
	"github.com/torneolink/backend/db"
	"github.com/torneolink/backend/handlers"
	"github.com/torneolink/backend/middleware"
	"github.com/torneolink/backend/repositories"
	api "github.com/torneolink/backend/routes"
	"github.com/torneolink/backend/services"
	"github.com/torneolink/backend/storage"
)

const migrationsSource = "file://db/migrations"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn, migrationsSource); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	txManager := repositories.NewSQLTxManager(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	roleRepo := repositories.NewPostgresRoleRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	enrollmentRepo := repositories.NewPostgresEnrollmentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	sanctionRepo := repositories.NewPostgresSanctionRepository(dbConn)
	incidentRepo := repositories.NewPostgresIncidentRepository(dbConn)
	notificationRepo := repositories.NewPostgresNotificationRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	paymentRepo := repositories.NewPostgresPaymentRepository(dbConn)
	logger.Info("repositories initialized")

	inviteService := services.NewInviteService(teamRepo, uuid.NewString)
	authService := services.NewAuthService(txManager, userRepo, roleRepo, teamRepo, playerRepo, inviteService, logger)
	userService := services.NewUserService(userRepo, roleRepo, logger)
	teamService := services.NewTeamService(txManager, teamRepo, playerRepo, userRepo, sanctionRepo, cloudflareUploader, logger)
	tournamentService := services.NewTournamentService(txManager, tournamentRepo, teamRepo, enrollmentRepo, logger)
	matchService := services.NewMatchService(
		txManager,
		matchRepo,
		eventRepo,
		playerRepo,
		teamRepo,
		tournamentRepo,
		sanctionRepo,
		notificationRepo,
		incidentRepo,
		logger,
	)
	statsService := services.NewStatsService(tournamentRepo, enrollmentRepo, matchRepo, eventRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	venueService := services.NewVenueService(venueRepo)
	paymentService := services.NewPaymentService(paymentRepo, userRepo)
	logger.Info("services initialized")

	tokens := handlers.TokenConfig{
		Secret:     cfg.JWTSecretKey,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		Expiration: cfg.JWTExpiration,
	}
	authHandler := handlers.NewAuthHandler(authService, tokens, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	teamHandler := handlers.NewTeamHandler(teamService, logger)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, statsService, logger)
	matchHandler := handlers.NewMatchHandler(matchService, statsService, logger)
	inviteHandler := handlers.NewInviteHandler(inviteService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	venueHandler := handlers.NewVenueHandler(venueService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)
	logger.Info("HTTP handlers initialized")

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey, cfg.JWTIssuer, cfg.JWTAudience)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		userHandler,
		teamHandler,
		tournamentHandler,
		matchHandler,
		inviteHandler,
		notificationHandler,
		venueHandler,
		paymentHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

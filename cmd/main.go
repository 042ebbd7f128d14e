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
	_ "github.com/lib/pq"

	"github.com/Sabbir999/Team-budget/aggregator"
	"github.com/Sabbir999/Team-budget/config"
	"github.com/Sabbir999/Team-budget/db"
	"github.com/Sabbir999/Team-budget/handlers"
	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/repositories"
	api "github.com/Sabbir999/Team-budget/routes"
	"github.com/Sabbir999/Team-budget/services"
	"github.com/Sabbir999/Team-budget/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

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

	if err := db.RunMigrations(dbConn); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	var uploader storage.FileUploader
	if cfg.UploadsEnabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	} else {
		logger.Warn("object storage not configured, uploads disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()
	bus := live.NewBus()
	logger.Info("WebSocket hub and event bus started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	expenseRepo := repositories.NewPostgresExpenseRepository(dbConn)
	paymentRepo := repositories.NewPostgresPaymentRepository(dbConn)
	prefRepo := repositories.NewPostgresPreferenceRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader, bus)
	playerService := services.NewPlayerService(playerRepo, teamRepo, bus)
	expenseService := services.NewExpenseService(expenseRepo, teamRepo, uploader, bus, cfg.EnforceTeamSport)
	paymentService := services.NewPaymentService(paymentRepo, playerRepo, bus)
	dashboardService := services.NewDashboardService(teamRepo, playerRepo, expenseRepo, paymentRepo)
	preferenceService := services.NewPreferenceService(prefRepo)
	logger.Info("services initialized")

	sessionManager := aggregator.NewManager(
		teamService,
		playerService,
		expenseService,
		paymentService,
		dashboardService,
		preferenceService,
		bus,
		wsHub,
	)

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService, sessionManager)
	playerHandler := handlers.NewPlayerHandler(playerService, dashboardService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	sportHandler := handlers.NewSportHandler()
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService, sessionManager)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, sessionManager)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		userHandler,
		teamHandler,
		playerHandler,
		expenseHandler,
		paymentHandler,
		dashboardHandler,
		sportHandler,
		preferenceHandler,
		webSocketHandler,
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

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shut down gracefully")
		}
	}
}

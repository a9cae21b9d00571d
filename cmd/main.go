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
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/softballsistem/SoftballStads-Ochoa/config"
	"github.com/softballsistem/SoftballStads-Ochoa/db"
	"github.com/softballsistem/SoftballStads-Ochoa/handlers"
	"github.com/softballsistem/SoftballStads-Ochoa/live"
	"github.com/softballsistem/SoftballStads-Ochoa/middleware"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	api "github.com/softballsistem/SoftballStads-Ochoa/routes"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
	"github.com/softballsistem/SoftballStads-Ochoa/storage"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
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

	// Инициализация загрузчика файлов (Cloudflare R2).
	// Без конфигурации R2 приложение работает, но логотипы недоступны.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
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
		logger.Warn("R2 storage is not configured, team logo uploads are disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	statRepo := repositories.NewPostgresStatRepository(dbConn)
	requestRepo := repositories.NewPostgresRoleRequestRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, cfg.DeveloperEmails, cfg.AdminEmails)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, wsHub)
	playerService := services.NewPlayerService(playerRepo, statRepo, wsHub)
	gameService := services.NewGameService(gameRepo, statRepo, wsHub)
	statService := services.NewStatService(statRepo, playerRepo, gameRepo, wsHub)
	requestService := services.NewRoleRequestService(requestRepo, userRepo)
	dashboardService := services.NewDashboardService(teamRepo, playerRepo, gameRepo, statRepo)
	logger.Info("Services initialized")

	// Google OAuth опционален: без client id маршруты отвечают 404.
	var oauthConfig *oauth2.Config
	if cfg.GoogleOauthClientID != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     cfg.GoogleOauthClientID,
			ClientSecret: cfg.GoogleOauthClientSecret,
			RedirectURL:  cfg.GoogleOauthRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
		logger.Info("Google OAuth configured")
	}

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, userService, cfg.JWTSecretKey, oauthConfig, cfg.FrontendURL)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService, playerService)
	playerHandler := handlers.NewPlayerHandler(playerService, statService)
	gameHandler := handlers.NewGameHandler(gameService, statService)
	statHandler := handlers.NewStatHandler(statService)
	requestHandler := handlers.NewRoleRequestHandler(requestService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		userHandler,
		teamHandler,
		playerHandler,
		gameHandler,
		statHandler,
		requestHandler,
		dashboardHandler,
		webSocketHandler,
		cfg.AllowedOrigins,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
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
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

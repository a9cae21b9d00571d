package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"

	"github.com/softballsistem/SoftballStads-Ochoa/handlers"
	"github.com/softballsistem/SoftballStads-Ochoa/middleware"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
)

// SetupRoutes настраивает все маршруты приложения. Просмотр данных лиги
// открыт посетителям, изменение закрыто соответствующими правами ролей.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	gameHandler *handlers.GameHandler,
	statHandler *handlers.StatHandler,
	requestHandler *handlers.RoleRequestHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Аутентификация
	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/signin", authHandler.SignIn)
	router.Get("/auth/google/login", authHandler.GoogleLogin)
	router.Get("/auth/google/callback", authHandler.GoogleCallback)

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Get("/auth/me", authHandler.Me)
		r.Patch("/auth/username", authHandler.ChangeUsername)
	})

	// WebSocket подписки на изменения таблиц
	router.Get("/ws/{table}", webSocketHandler.ServeWs)

	// Публичные маршруты просмотра. Токен необязателен, но если он
	// прислан, то должен быть валидным.
	router.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuthenticate)
		r.Use(middleware.RequirePermission(models.PermissionViewStats))

		r.Get("/teams", teamHandler.ListTeams)
		r.Get("/teams/{teamID}", teamHandler.GetTeamByID)
		r.Get("/teams/{teamID}/players", teamHandler.ListTeamPlayers)
		r.Get("/players", playerHandler.ListPlayers)
		r.Get("/players/{playerID}", playerHandler.GetPlayerByID)
		r.Get("/players/{playerID}/stats", playerHandler.GetPlayerStats)
		r.Get("/games", gameHandler.ListGames)
		r.Get("/games/{gameID}", gameHandler.GetGameByID)
		r.Get("/games/{gameID}/stats", gameHandler.ListGameStats)
		r.Get("/ranking", dashboardHandler.GetRanking)
	})

	// Управление командами
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionManageTeams))

		r.Post("/teams", teamHandler.CreateTeam)
		r.Put("/teams/{teamID}", teamHandler.UpdateTeam)
		r.Delete("/teams/{teamID}", teamHandler.DeleteTeam)
		r.Post("/teams/{teamID}/logo", teamHandler.UploadTeamLogo)
	})

	// Управление игроками
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionManagePlayers))

		r.Post("/players", playerHandler.CreatePlayer)
		r.Put("/players/{playerID}", playerHandler.UpdatePlayer)
		r.Delete("/players/{playerID}", playerHandler.DeletePlayer)
	})

	// Управление играми
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionManageGames))

		r.Post("/games", gameHandler.CreateGame)
		r.Put("/games/{gameID}", gameHandler.UpdateGame)
		r.Delete("/games/{gameID}", gameHandler.DeleteGame)
		r.Post("/games/{gameID}/recalculate", gameHandler.RecalculateScores)
	})

	// Ввод статистики
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionManageStats))

		r.Post("/stats", statHandler.UpsertStat)
		r.Delete("/stats/{statID}", statHandler.DeleteStat)
		r.Post("/stats/import", statHandler.ImportStats)
	})

	// Панель управления
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionViewDashboard))

		r.Get("/dashboard", dashboardHandler.GetOverview)
	})

	// Пользователи и роли
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionAccessAdmin))

		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/{userID}", userHandler.GetUserByID)
		r.Get("/role-requests", requestHandler.ListRequests)
		r.Post("/role-requests", requestHandler.CreateRequest)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequirePermission(models.PermissionChangeRoles))

		r.Put("/users/{userID}/role", userHandler.UpdateUserRole)
		r.Post("/role-requests/{requestID}/approve", requestHandler.ApproveRequest)
		r.Post("/role-requests/{requestID}/reject", requestHandler.RejectRequest)
	})
}

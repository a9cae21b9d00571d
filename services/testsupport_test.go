package services_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	"github.com/softballsistem/SoftballStads-Ochoa/storage"
)

// Фейковые репозитории в памяти для тестов сервисного слоя.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return repositories.ErrUserUsernameConflict
		}
	}
	copied := *user
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	r.users[user.UID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByUID(_ context.Context, uid string) (*models.User, error) {
	user, ok := r.users[uid]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) UpdateUsername(_ context.Context, uid string, username string) error {
	user, ok := r.users[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for otherUID, other := range r.users {
		if otherUID != uid && strings.EqualFold(other.Username, username) {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.Username = username
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, uid string, role models.UserRole) error {
	user, ok := r.users[uid]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}

type fakeTeamRepo struct {
	teams map[string]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*models.Team)}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	for _, existing := range r.teams {
		if strings.EqualFold(existing.Name, team.Name) {
			return repositories.ErrTeamNameConflict
		}
	}
	copied := *team
	copied.CreatedAt = time.Now()
	r.teams[team.ID] = &copied
	team.CreatedAt = copied.CreatedAt
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.Team, error) {
	teams := make([]models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, *team)
	}
	return teams, nil
}

func (r *fakeTeamRepo) Count(_ context.Context) (int, error) {
	return len(r.teams), nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for otherID, other := range r.teams {
		if otherID != team.ID && strings.EqualFold(other.Name, team.Name) {
			return repositories.ErrTeamNameConflict
		}
	}
	copied := *team
	r.teams[team.ID] = &copied
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, id string, logoKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

// fakeUploader запоминает загруженные ключи, ничего не сохраняя.
type fakeUploader struct {
	uploaded []string
	deleted  []string
	baseURL  string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{baseURL: "https://cdn.test"}
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, _ io.Reader) (*storage.UploadResult, error) {
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: u.baseURL + "/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return u.baseURL + "/" + key
}

type fakePlayerRepo struct {
	players map[string]*models.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*models.Player)}
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	copied := *player
	copied.CreatedAt = time.Now()
	r.players[player.ID] = &copied
	player.CreatedAt = copied.CreatedAt
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	player, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (r *fakePlayerRepo) GetByName(_ context.Context, name string) (*models.Player, error) {
	for _, player := range r.players {
		if strings.EqualFold(player.Name, name) {
			copied := *player
			return &copied, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) List(_ context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, *player)
	}
	return players, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID string) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for _, player := range r.players {
		if player.TeamID != nil && *player.TeamID == teamID {
			players = append(players, *player)
		}
	}
	return players, nil
}

func (r *fakePlayerRepo) Count(_ context.Context) (int, error) {
	return len(r.players), nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	copied := *player
	r.players[player.ID] = &copied
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeGameRepo struct {
	games map[string]*models.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*models.Game)}
}

func (r *fakeGameRepo) Create(_ context.Context, game *models.Game) error {
	copied := *game
	copied.CreatedAt = time.Now()
	r.games[game.ID] = &copied
	game.CreatedAt = copied.CreatedAt
	return nil
}

func (r *fakeGameRepo) GetByID(_ context.Context, id string) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	copied := *game
	return &copied, nil
}

func (r *fakeGameRepo) FindByDateAndTeams(_ context.Context, date time.Time, homeTeam, awayTeam string) (*models.Game, error) {
	for _, game := range r.games {
		sameDate := game.Date.Year() == date.Year() && game.Date.YearDay() == date.YearDay()
		if !sameDate || game.HomeTeamName == nil || game.AwayTeamName == nil {
			continue
		}
		if strings.EqualFold(*game.HomeTeamName, homeTeam) && strings.EqualFold(*game.AwayTeamName, awayTeam) {
			copied := *game
			return &copied, nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r *fakeGameRepo) List(_ context.Context, limit int) ([]models.Game, error) {
	games := make([]models.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, *game)
	}
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (r *fakeGameRepo) Count(_ context.Context) (int, error) {
	return len(r.games), nil
}

func (r *fakeGameRepo) Update(_ context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	copied := *game
	r.games[game.ID] = &copied
	return nil
}

func (r *fakeGameRepo) UpdateScores(_ context.Context, id string, homeScore, awayScore int) error {
	game, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.HomeScore = homeScore
	game.AwayScore = awayScore
	return nil
}

func (r *fakeGameRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

type fakeStatRepo struct {
	stats map[string]*models.PlayerStat // ключ player_id|game_id
}

func newFakeStatRepo() *fakeStatRepo {
	return &fakeStatRepo{stats: make(map[string]*models.PlayerStat)}
}

func statKey(playerID, gameID string) string {
	return fmt.Sprintf("%s|%s", playerID, gameID)
}

func (r *fakeStatRepo) Upsert(_ context.Context, stat *models.PlayerStat) error {
	key := statKey(stat.PlayerID, stat.GameID)
	now := time.Now()
	if existing, ok := r.stats[key]; ok {
		stat.ID = existing.ID
		stat.CreatedAt = existing.CreatedAt
	} else {
		stat.CreatedAt = now
	}
	stat.UpdatedAt = now
	copied := *stat
	r.stats[key] = &copied
	return nil
}

func (r *fakeStatRepo) ListByPlayer(_ context.Context, playerID string) ([]models.PlayerStat, error) {
	stats := make([]models.PlayerStat, 0)
	for _, stat := range r.stats {
		if stat.PlayerID == playerID {
			stats = append(stats, *stat)
		}
	}
	return stats, nil
}

func (r *fakeStatRepo) ListByGame(_ context.Context, gameID string) ([]models.PlayerStat, error) {
	stats := make([]models.PlayerStat, 0)
	for _, stat := range r.stats {
		if stat.GameID == gameID {
			stats = append(stats, *stat)
		}
	}
	return stats, nil
}

func (r *fakeStatRepo) ListAll(_ context.Context) ([]models.PlayerStat, error) {
	stats := make([]models.PlayerStat, 0, len(r.stats))
	for _, stat := range r.stats {
		stats = append(stats, *stat)
	}
	return stats, nil
}

func (r *fakeStatRepo) Delete(_ context.Context, id string) error {
	for key, stat := range r.stats {
		if stat.ID == id {
			delete(r.stats, key)
			return nil
		}
	}
	return repositories.ErrStatNotFound
}

type fakeRoleRequestRepo struct {
	requests map[string]*models.RoleChangeRequest
}

func newFakeRoleRequestRepo() *fakeRoleRequestRepo {
	return &fakeRoleRequestRepo{requests: make(map[string]*models.RoleChangeRequest)}
}

func (r *fakeRoleRequestRepo) Create(_ context.Context, request *models.RoleChangeRequest) error {
	copied := *request
	copied.CreatedAt = time.Now()
	r.requests[request.ID] = &copied
	request.CreatedAt = copied.CreatedAt
	return nil
}

func (r *fakeRoleRequestRepo) GetByID(_ context.Context, id string) (*models.RoleChangeRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrRoleRequestNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRoleRequestRepo) List(_ context.Context, status *models.RoleRequestStatus) ([]models.RoleChangeRequest, error) {
	requests := make([]models.RoleChangeRequest, 0)
	for _, request := range r.requests {
		if status != nil && request.Status != *status {
			continue
		}
		requests = append(requests, *request)
	}
	return requests, nil
}

func (r *fakeRoleRequestRepo) UpdateStatus(_ context.Context, id string, status models.RoleRequestStatus, reviewedBy string, reviewedAt time.Time) error {
	request, ok := r.requests[id]
	if !ok || request.Status != models.RoleRequestPending {
		return repositories.ErrRoleRequestNotFound
	}
	request.Status = status
	request.ReviewedBy = &reviewedBy
	request.ReviewedAt = &reviewedAt
	return nil
}

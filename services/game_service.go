package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/live"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
)

type GameService interface {
	Create(ctx context.Context, input GameInput) (*models.Game, error)
	GetByID(ctx context.Context, id string) (*models.Game, error)
	List(ctx context.Context, limit int) ([]models.Game, error)
	Update(ctx context.Context, id string, input GameInput) (*models.Game, error)
	Delete(ctx context.Context, id string) error
	// RecalculateScores пересчитывает счёт игры как сумму пробежек
	// игроков каждой команды по записям статистики.
	RecalculateScores(ctx context.Context, id string) (*models.Game, error)
}

type GameInput struct {
	Date       *time.Time `json:"date"`
	HomeTeamID *string    `json:"home_team_id,omitempty"`
	AwayTeamID *string    `json:"away_team_id,omitempty"`
	HomeScore  *int       `json:"home_score,omitempty"`
	AwayScore  *int       `json:"away_score,omitempty"`
	Location   *string    `json:"location,omitempty"`
	Status     string     `json:"status,omitempty"`
}

type gameService struct {
	gameRepo repositories.GameRepository
	statRepo repositories.StatRepository
	hub      *live.Hub
}

func NewGameService(gameRepo repositories.GameRepository, statRepo repositories.StatRepository, hub *live.Hub) GameService {
	return &gameService{
		gameRepo: gameRepo,
		statRepo: statRepo,
		hub:      hub,
	}
}

func (s *gameService) Create(ctx context.Context, input GameInput) (*models.Game, error) {
	if input.Date == nil || input.Date.IsZero() {
		return nil, ErrGameDateRequired
	}

	homeTeamID := trimToNil(input.HomeTeamID)
	awayTeamID := trimToNil(input.AwayTeamID)
	if homeTeamID != nil && awayTeamID != nil && *homeTeamID == *awayTeamID {
		return nil, ErrGameSameTeams
	}

	status := models.GameStatusScheduled
	if input.Status != "" {
		status = models.GameStatus(input.Status)
		if !models.IsValidGameStatus(status) {
			return nil, ErrGameInvalidStatus
		}
	}

	game := &models.Game{
		ID:         uuid.NewString(),
		Date:       *input.Date,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		Location:   trimToNil(input.Location),
		Status:     status,
	}
	if input.HomeScore != nil {
		game.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		game.AwayScore = *input.AwayScore
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.publish(live.ActionInsert, game)
	return game, nil
}

// GetByID возвращает игру вместе со статистикой всех участников.
func (s *gameService) GetByID(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	gameStats, err := s.statRepo.ListByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game stats: %w", err)
	}
	game.Stats = gameStats

	return game, nil
}

func (s *gameService) List(ctx context.Context, limit int) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (s *gameService) Update(ctx context.Context, id string, input GameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, ErrGameDateRequired
		}
		game.Date = *input.Date
	}
	if input.HomeTeamID != nil {
		game.HomeTeamID = trimToNil(input.HomeTeamID)
	}
	if input.AwayTeamID != nil {
		game.AwayTeamID = trimToNil(input.AwayTeamID)
	}
	if game.HomeTeamID != nil && game.AwayTeamID != nil && *game.HomeTeamID == *game.AwayTeamID {
		return nil, ErrGameSameTeams
	}
	if input.HomeScore != nil {
		game.HomeScore = *input.HomeScore
	}
	if input.AwayScore != nil {
		game.AwayScore = *input.AwayScore
	}
	if input.Location != nil {
		game.Location = trimToNil(input.Location)
	}
	if input.Status != "" {
		status := models.GameStatus(input.Status)
		if !models.IsValidGameStatus(status) {
			return nil, ErrGameInvalidStatus
		}
		game.Status = status
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGameNotFound):
			return nil, ErrGameNotFound
		case errors.Is(err, repositories.ErrGameTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	s.publish(live.ActionUpdate, game)
	return game, nil
}

func (s *gameService) Delete(ctx context.Context, id string) error {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to load game: %w", err)
	}

	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to delete game: %w", err)
	}

	s.publish(live.ActionDelete, game)
	return nil
}

func (s *gameService) RecalculateScores(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	gameStats, err := s.statRepo.ListByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game stats: %w", err)
	}

	homeScore, awayScore := 0, 0
	for _, stat := range gameStats {
		if stat.PlayerTeamID == nil {
			continue
		}
		switch {
		case game.HomeTeamID != nil && *stat.PlayerTeamID == *game.HomeTeamID:
			homeScore += stat.Runs
		case game.AwayTeamID != nil && *stat.PlayerTeamID == *game.AwayTeamID:
			awayScore += stat.Runs
		}
	}

	if err := s.gameRepo.UpdateScores(ctx, id, homeScore, awayScore); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game scores: %w", err)
	}

	game.HomeScore = homeScore
	game.AwayScore = awayScore
	game.Stats = gameStats

	s.publish(live.ActionUpdate, game)
	return game, nil
}

func (s *gameService) publish(action live.ChangeAction, game *models.Game) {
	if s.hub != nil {
		s.hub.Publish("games", action, game)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/live"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
)

const defaultPosition = "Utility"

type PlayerService interface {
	Create(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]models.Player, error)
	Update(ctx context.Context, id string, input PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id string) error
}

type PlayerInput struct {
	Name         string     `json:"name"`
	JerseyNumber *int       `json:"jersey_number,omitempty"`
	Position     string     `json:"position,omitempty"`
	TeamID       *string    `json:"team_id,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	statRepo   repositories.StatRepository
	hub        *live.Hub
}

func NewPlayerService(playerRepo repositories.PlayerRepository, statRepo repositories.StatRepository, hub *live.Hub) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		statRepo:   statRepo,
		hub:        hub,
	}
}

func (s *playerService) Create(ctx context.Context, input PlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	position := strings.TrimSpace(input.Position)
	if position == "" {
		position = defaultPosition
	}

	player := &models.Player{
		ID:           uuid.NewString(),
		Name:         name,
		JerseyNumber: input.JerseyNumber,
		Position:     position,
		TeamID:       trimToNil(input.TeamID),
		DateOfBirth:  input.DateOfBirth,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.publish(live.ActionInsert, player)
	return player, nil
}

// GetByID возвращает игрока вместе со списком его записей статистики.
func (s *playerService) GetByID(ctx context.Context, id string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	playerStats, err := s.statRepo.ListByPlayer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}
	player.Stats = playerStats

	return player, nil
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) ListByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team players: %w", err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id string, input PlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	player.Name = name
	player.JerseyNumber = input.JerseyNumber
	player.TeamID = trimToNil(input.TeamID)
	player.DateOfBirth = input.DateOfBirth
	if position := strings.TrimSpace(input.Position); position != "" {
		player.Position = position
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	s.publish(live.ActionUpdate, player)
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id string) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to load player: %w", err)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}

	s.publish(live.ActionDelete, player)
	return nil
}

func (s *playerService) publish(action live.ChangeAction, player *models.Player) {
	if s.hub != nil {
		s.hub.Publish("players", action, player)
	}
}

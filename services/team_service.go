package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/live"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	"github.com/softballsistem/SoftballStads-Ochoa/storage"
)

const (
	defaultSeason   = "2024"
	maxLogoSize     = 5 * 1024 * 1024
	logoKeyTemplate = "logos/%s-%d%s"
)

var allowedLogoTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

type TeamService interface {
	Create(ctx context.Context, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, id string, input TeamInput) (*models.Team, error)
	Delete(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id string, contentType string, size int64, file io.Reader) (*models.Team, error)
}

type TeamInput struct {
	Name   string  `json:"name"`
	Coach  *string `json:"coach,omitempty"`
	Season string  `json:"season,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	hub        *live.Hub
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader, hub *live.Hub) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		hub:        hub,
	}
}

func (s *teamService) Create(ctx context.Context, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	season := strings.TrimSpace(input.Season)
	if season == "" {
		season = defaultSeason
	}

	team := &models.Team{
		ID:     uuid.NewString(),
		Name:   name,
		Coach:  trimToNil(input.Coach),
		Season: season,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.publish(live.ActionInsert, team)
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team players: %w", err)
	}
	team.Players = players

	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id string, input TeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team.Name = name
	team.Coach = trimToNil(input.Coach)
	if season := strings.TrimSpace(input.Season); season != "" {
		team.Season = season
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	populateTeamLogoURL(team, s.uploader)
	s.publish(live.ActionUpdate, team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id string) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to load team: %w", err)
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	// Осиротевший логотип убирается по возможности; сбой не отменяет
	// удаление команды.
	if team.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	s.publish(live.ActionDelete, team)
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, id string, contentType string, size int64, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	ext, ok := allowedLogoTypes[contentType]
	if !ok {
		return nil, ErrLogoTypeNotAllowed
	}
	if size > maxLogoSize {
		return nil, ErrLogoTooLarge
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	key := fmt.Sprintf(logoKeyTemplate, team.ID, time.Now().Unix(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, &key); err != nil {
		_ = s.uploader.Delete(ctx, key)
		return nil, fmt.Errorf("failed to store team logo key: %w", err)
	}
	team.LogoKey = &key

	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	populateTeamLogoURL(team, s.uploader)
	s.publish(live.ActionUpdate, team)
	return team, nil
}

func (s *teamService) publish(action live.ChangeAction, team *models.Team) {
	if s.hub != nil {
		s.hub.Publish("teams", action, team)
	}
}

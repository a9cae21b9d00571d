package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/softballsistem/SoftballStads-Ochoa/live"
	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	"github.com/softballsistem/SoftballStads-Ochoa/stats"
)

type StatService interface {
	// Upsert создаёт запись статистики либо перезаписывает существующую
	// для пары игрок-игра. Счётчики нормализуются до неотрицательных.
	Upsert(ctx context.Context, input StatInput) (*models.PlayerStat, error)
	ListByPlayer(ctx context.Context, playerID string) (*PlayerStatsSummary, error)
	ListByGame(ctx context.Context, gameID string) ([]models.PlayerStat, error)
	Delete(ctx context.Context, id string) error
	// ImportCSV разбирает CSV-файл и записывает статистику одним батчем.
	// Любая невалидная строка отменяет импорт целиком.
	ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error)
}

type StatInput struct {
	PlayerID    string `json:"player_id"`
	GameID      string `json:"game_id"`
	AtBats      int    `json:"at_bats"`
	Hits        int    `json:"hits"`
	Runs        int    `json:"runs"`
	RBI         int    `json:"rbi"`
	Doubles     int    `json:"doubles"`
	Triples     int    `json:"triples"`
	HomeRuns    int    `json:"home_runs"`
	Walks       int    `json:"walks"`
	Strikeouts  int    `json:"strikeouts"`
	StolenBases int    `json:"stolen_bases"`
	Errors      int    `json:"errors"`
}

// PlayerStatsSummary — записи статистики игрока и агрегат по ним.
type PlayerStatsSummary struct {
	Stats     []models.PlayerStat `json:"stats"`
	Aggregate stats.Aggregate     `json:"aggregate"`
}

// ImportSummary — результат успешного CSV-импорта.
type ImportSummary struct {
	Imported int `json:"imported"`
}

type statService struct {
	statRepo   repositories.StatRepository
	playerRepo repositories.PlayerRepository
	gameRepo   repositories.GameRepository
	hub        *live.Hub
}

func NewStatService(
	statRepo repositories.StatRepository,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	hub *live.Hub,
) StatService {
	return &statService{
		statRepo:   statRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		hub:        hub,
	}
}

func (s *statService) Upsert(ctx context.Context, input StatInput) (*models.PlayerStat, error) {
	playerID := strings.TrimSpace(input.PlayerID)
	gameID := strings.TrimSpace(input.GameID)
	if playerID == "" || gameID == "" {
		return nil, ErrStatKeysRequired
	}

	stat := &models.PlayerStat{
		ID:          uuid.NewString(),
		PlayerID:    playerID,
		GameID:      gameID,
		AtBats:      clampCount(input.AtBats),
		Hits:        clampCount(input.Hits),
		Runs:        clampCount(input.Runs),
		RBI:         clampCount(input.RBI),
		Doubles:     clampCount(input.Doubles),
		Triples:     clampCount(input.Triples),
		HomeRuns:    clampCount(input.HomeRuns),
		Walks:       clampCount(input.Walks),
		Strikeouts:  clampCount(input.Strikeouts),
		StolenBases: clampCount(input.StolenBases),
		Errors:      clampCount(input.Errors),
	}
	if stat.Hits > stat.AtBats {
		return nil, ErrStatHitsExceedAtBats
	}

	if err := s.statRepo.Upsert(ctx, stat); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStatPlayerInvalid):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrStatGameInvalid):
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to save player stat: %w", err)
	}

	s.publish(live.ActionUpdate, stat)
	return stat, nil
}

func (s *statService) ListByPlayer(ctx context.Context, playerID string) (*PlayerStatsSummary, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	playerStats, err := s.statRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list player stats: %w", err)
	}

	return &PlayerStatsSummary{
		Stats:     playerStats,
		Aggregate: stats.Calculate(playerStats),
	}, nil
}

func (s *statService) ListByGame(ctx context.Context, gameID string) ([]models.PlayerStat, error) {
	gameStats, err := s.statRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game stats: %w", err)
	}
	return gameStats, nil
}

func (s *statService) Delete(ctx context.Context, id string) error {
	if err := s.statRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStatNotFound) {
			return ErrStatNotFound
		}
		return fmt.Errorf("failed to delete player stat: %w", err)
	}

	s.publish(live.ActionDelete, &models.PlayerStat{ID: id})
	return nil
}

func (s *statService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	rows, err := stats.ParseImport(r)
	if err != nil {
		return nil, err
	}

	// Сначала сопоставляем все строки с записями БД. Батч пишется
	// только если разрешилась каждая строка.
	type resolvedRow struct {
		playerID string
		gameID   string
		row      stats.ImportRow
	}

	var (
		resolved  []resolvedRow
		rowErrors []stats.RowError
	)
	for _, row := range rows {
		player, err := s.playerRepo.GetByName(ctx, row.PlayerName)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				rowErrors = append(rowErrors, stats.RowError{
					Line:    row.Line,
					Message: fmt.Sprintf("player %q not found", row.PlayerName),
				})
				continue
			}
			return nil, fmt.Errorf("failed to resolve player: %w", err)
		}

		game, err := s.gameRepo.FindByDateAndTeams(ctx, row.GameDate, row.HomeTeam, row.AwayTeam)
		if err != nil {
			if errors.Is(err, repositories.ErrGameNotFound) {
				rowErrors = append(rowErrors, stats.RowError{
					Line: row.Line,
					Message: fmt.Sprintf("game %s vs %s on %s not found",
						row.HomeTeam, row.AwayTeam, row.GameDate.Format("2006-01-02")),
				})
				continue
			}
			return nil, fmt.Errorf("failed to resolve game: %w", err)
		}

		resolved = append(resolved, resolvedRow{playerID: player.ID, gameID: game.ID, row: row})
	}
	if len(rowErrors) > 0 {
		return nil, &stats.ImportError{Rows: rowErrors}
	}

	for _, rr := range resolved {
		stat := &models.PlayerStat{
			ID:          uuid.NewString(),
			PlayerID:    rr.playerID,
			GameID:      rr.gameID,
			AtBats:      rr.row.AtBats,
			Hits:        rr.row.Hits,
			Runs:        rr.row.Runs,
			RBI:         rr.row.RBI,
			Doubles:     rr.row.Doubles,
			Triples:     rr.row.Triples,
			HomeRuns:    rr.row.HomeRuns,
			Walks:       rr.row.Walks,
			Strikeouts:  rr.row.Strikeouts,
			StolenBases: rr.row.StolenBases,
			Errors:      rr.row.Errors,
		}
		if err := s.statRepo.Upsert(ctx, stat); err != nil {
			return nil, fmt.Errorf("failed to import stat at line %d: %w", rr.row.Line, err)
		}
		s.publish(live.ActionUpdate, stat)
	}

	return &ImportSummary{Imported: len(resolved)}, nil
}

func (s *statService) publish(action live.ChangeAction, stat *models.PlayerStat) {
	if s.hub != nil {
		s.hub.Publish("player_stats", action, stat)
	}
}

func clampCount(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

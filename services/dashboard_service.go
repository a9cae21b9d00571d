package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/repositories"
	"github.com/softballsistem/SoftballStads-Ochoa/stats"
)

const (
	rankingMinAtBats = 10
	rankingLimit     = 10
	recentGamesLimit = 5
)

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	// Ranking возвращает топ отбивающих сезона. Игроки с менее чем
	// десятью выходами на биту в рейтинг не попадают.
	Ranking(ctx context.Context) ([]RankingEntry, error)
}

type DashboardOverview struct {
	TeamCount   int           `json:"team_count"`
	PlayerCount int           `json:"player_count"`
	GameCount   int           `json:"game_count"`
	RecentGames []models.Game `json:"recent_games"`
}

type RankingEntry struct {
	PlayerID     string          `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	TeamID       *string         `json:"team_id,omitempty"`
	JerseyNumber *int            `json:"jersey_number,omitempty"`
	Position     *string         `json:"position,omitempty"`
	Aggregate    stats.Aggregate `json:"aggregate"`
}

type dashboardService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	gameRepo   repositories.GameRepository
	statRepo   repositories.StatRepository
}

func NewDashboardService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	statRepo repositories.StatRepository,
) DashboardService {
	return &dashboardService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		statRepo:   statRepo,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.teamRepo.Count(gctx)
		overview.TeamCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.playerRepo.Count(gctx)
		overview.PlayerCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.gameRepo.Count(gctx)
		overview.GameCount = count
		return err
	})
	g.Go(func() error {
		games, err := s.gameRepo.List(gctx, recentGamesLimit)
		overview.RecentGames = games
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard overview: %w", err)
	}
	return overview, nil
}

func (s *dashboardService) Ranking(ctx context.Context) ([]RankingEntry, error) {
	allStats, err := s.statRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for ranking: %w", err)
	}

	byPlayer := make(map[string][]models.PlayerStat)
	order := make([]string, 0)
	for _, stat := range allStats {
		if _, seen := byPlayer[stat.PlayerID]; !seen {
			order = append(order, stat.PlayerID)
		}
		byPlayer[stat.PlayerID] = append(byPlayer[stat.PlayerID], stat)
	}

	entries := make([]RankingEntry, 0, len(order))
	for _, playerID := range order {
		playerStats := byPlayer[playerID]
		aggregate := stats.Calculate(playerStats)
		if aggregate.AtBats < rankingMinAtBats {
			continue
		}

		entry := RankingEntry{
			PlayerID:  playerID,
			Aggregate: aggregate,
		}
		first := playerStats[0]
		if first.PlayerName != nil {
			entry.PlayerName = *first.PlayerName
		}
		entry.TeamID = first.PlayerTeamID
		entry.JerseyNumber = first.JerseyNumber
		entry.Position = first.Position

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Aggregate.AVG != entries[j].Aggregate.AVG {
			return entries[i].Aggregate.AVG > entries[j].Aggregate.AVG
		}
		return entries[i].Aggregate.AtBats > entries[j].Aggregate.AtBats
	})

	if len(entries) > rankingLimit {
		entries = entries[:rankingLimit]
	}
	return entries, nil
}

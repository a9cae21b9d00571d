package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

func newGameServiceForTest() (services.GameService, *fakeGameRepo, *fakeStatRepo) {
	gameRepo := newFakeGameRepo()
	statRepo := newFakeStatRepo()
	return services.NewGameService(gameRepo, statRepo, nil), gameRepo, statRepo
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func TestGameServiceCreate(t *testing.T) {
	gameDate := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   services.GameInput
		wantErr error
	}{
		{
			name:  "defaults to scheduled",
			input: services.GameInput{Date: timePtr(gameDate), HomeTeamID: strPtr("t1"), AwayTeamID: strPtr("t2")},
		},
		{
			name:    "date is required",
			input:   services.GameInput{HomeTeamID: strPtr("t1"), AwayTeamID: strPtr("t2")},
			wantErr: services.ErrGameDateRequired,
		},
		{
			name:    "home and away must differ",
			input:   services.GameInput{Date: timePtr(gameDate), HomeTeamID: strPtr("t1"), AwayTeamID: strPtr("t1")},
			wantErr: services.ErrGameSameTeams,
		},
		{
			name:    "unknown status",
			input:   services.GameInput{Date: timePtr(gameDate), Status: "postponed"},
			wantErr: services.ErrGameInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newGameServiceForTest()

			game, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.GameStatusScheduled, game.Status)
			assert.Equal(t, 0, game.HomeScore)
			assert.Equal(t, 0, game.AwayScore)
			assert.NotEmpty(t, game.ID)
		})
	}
}

func TestGameServiceUpdateSameTeamsRejected(t *testing.T) {
	svc, _, _ := newGameServiceForTest()
	ctx := context.Background()

	game, err := svc.Create(ctx, services.GameInput{
		Date:       timePtr(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)),
		HomeTeamID: strPtr("t1"),
		AwayTeamID: strPtr("t2"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, game.ID, services.GameInput{AwayTeamID: strPtr("t1")})
	assert.ErrorIs(t, err, services.ErrGameSameTeams)
}

func TestGameServiceRecalculateScores(t *testing.T) {
	svc, _, statRepo := newGameServiceForTest()
	ctx := context.Background()

	game, err := svc.Create(ctx, services.GameInput{
		Date:       timePtr(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)),
		HomeTeamID: strPtr("t1"),
		AwayTeamID: strPtr("t2"),
	})
	require.NoError(t, err)

	seed := []models.PlayerStat{
		{ID: "s1", PlayerID: "p1", GameID: game.ID, Runs: 2, PlayerTeamID: strPtr("t1")},
		{ID: "s2", PlayerID: "p2", GameID: game.ID, Runs: 1, PlayerTeamID: strPtr("t1")},
		{ID: "s3", PlayerID: "p3", GameID: game.ID, Runs: 4, PlayerTeamID: strPtr("t2")},
		// Игрок без команды в счёт не попадает.
		{ID: "s4", PlayerID: "p4", GameID: game.ID, Runs: 9},
		// Статистика другой игры не учитывается.
		{ID: "s5", PlayerID: "p5", GameID: "other-game", Runs: 7, PlayerTeamID: strPtr("t1")},
	}
	for i := range seed {
		require.NoError(t, statRepo.Upsert(ctx, &seed[i]))
	}

	updated, err := svc.RecalculateScores(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.HomeScore)
	assert.Equal(t, 4, updated.AwayScore)

	// Пересчёт сохраняется в хранилище.
	reloaded, err := svc.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.HomeScore)
	assert.Equal(t, 4, reloaded.AwayScore)
}

func TestGameServiceRecalculateScoresUnknownGame(t *testing.T) {
	svc, _, _ := newGameServiceForTest()

	_, err := svc.RecalculateScores(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrGameNotFound)
}

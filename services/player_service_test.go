package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softballsistem/SoftballStads-Ochoa/models"
	"github.com/softballsistem/SoftballStads-Ochoa/services"
)

func newPlayerServiceForTest() (services.PlayerService, *fakePlayerRepo, *fakeStatRepo) {
	playerRepo := newFakePlayerRepo()
	statRepo := newFakeStatRepo()
	return services.NewPlayerService(playerRepo, statRepo, nil), playerRepo, statRepo
}

func TestPlayerServiceCreate(t *testing.T) {
	tests := []struct {
		name         string
		input        services.PlayerInput
		wantPosition string
		wantErr      error
	}{
		{
			name:         "position defaults when omitted",
			input:        services.PlayerInput{Name: "Maria Lopez"},
			wantPosition: "Utility",
		},
		{
			name:         "explicit position",
			input:        services.PlayerInput{Name: "Jose Ramirez", Position: "Shortstop"},
			wantPosition: "Shortstop",
		},
		{
			name:    "name is required",
			input:   services.PlayerInput{Name: "  "},
			wantErr: services.ErrPlayerNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newPlayerServiceForTest()

			player, err := svc.Create(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPosition, player.Position)
			assert.NotEmpty(t, player.ID)
		})
	}
}

func TestPlayerServiceGetByIDLoadsStats(t *testing.T) {
	svc, _, statRepo := newPlayerServiceForTest()
	ctx := context.Background()

	player, err := svc.Create(ctx, services.PlayerInput{Name: "Maria Lopez"})
	require.NoError(t, err)

	for _, gameID := range []string{"g1", "g2"} {
		stat := models.PlayerStat{ID: player.ID + "-" + gameID, PlayerID: player.ID, GameID: gameID, AtBats: 3, Hits: 1}
		require.NoError(t, statRepo.Upsert(ctx, &stat))
	}

	loaded, err := svc.GetByID(ctx, player.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Stats, 2)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrPlayerNotFound)
}

func TestPlayerServiceDelete(t *testing.T) {
	svc, _, _ := newPlayerServiceForTest()
	ctx := context.Background()

	player, err := svc.Create(ctx, services.PlayerInput{Name: "Maria Lopez"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, player.ID))
	assert.ErrorIs(t, svc.Delete(ctx, player.ID), services.ErrPlayerNotFound)
}

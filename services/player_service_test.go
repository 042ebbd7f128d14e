package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sabbir999/Team-budget/live"
)

func TestCreatePlayer_Defaults(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	svc := NewPlayerService(playerRepo, teamRepo, live.NewBus())

	team := newTestTeam(t, teamRepo, "owner-1", "badminton")

	player, err := svc.CreatePlayer(context.Background(), "owner-1", CreatePlayerInput{
		TeamID: team.ID,
		Name:   "Alice",
	})
	require.NoError(t, err)
	require.True(t, player.IsActive, "players start active")

	inactive := false
	player, err = svc.CreatePlayer(context.Background(), "owner-1", CreatePlayerInput{
		TeamID:   team.ID,
		Name:     "Bob",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.False(t, player.IsActive)
}

func TestCreatePlayer_Validation(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	svc := NewPlayerService(playerRepo, teamRepo, live.NewBus())

	team := newTestTeam(t, teamRepo, "owner-1", "badminton")

	tests := []struct {
		name      string
		input     CreatePlayerInput
		wantField string
	}{
		{"missing name", CreatePlayerInput{TeamID: team.ID}, "name"},
		{"short name", CreatePlayerInput{TeamID: team.ID, Name: "A"}, "name"},
		{"missing team", CreatePlayerInput{Name: "Alice"}, "teamId"},
		{"bad email", CreatePlayerInput{TeamID: team.ID, Name: "Alice", Email: "nope"}, "email"},
		{"bad phone", CreatePlayerInput{TeamID: team.ID, Name: "Alice", Phone: "abc"}, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePlayer(context.Background(), "owner-1", tt.input)
			require.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestCreatePlayer_UnknownTeam(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo(), newFakeTeamRepo(), live.NewBus())

	_, err := svc.CreatePlayer(context.Background(), "owner-1", CreatePlayerInput{
		TeamID: "nope",
		Name:   "Alice",
	})
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestUpdatePlayer(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	svc := NewPlayerService(playerRepo, teamRepo, live.NewBus())

	team := newTestTeam(t, teamRepo, "owner-1", "badminton")

	player, err := svc.CreatePlayer(context.Background(), "owner-1", CreatePlayerInput{
		TeamID: team.ID,
		Name:   "Alice",
		Email:  "alice@example.com",
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdatePlayer(context.Background(), "owner-1", player.ID, UpdatePlayerInput{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, "alice@example.com", updated.Email, "untouched fields survive")
}

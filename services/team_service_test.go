package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sabbir999/Team-budget/live"
)

func TestCreateTeam(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	bus := live.NewBus()
	svc := NewTeamService(teamRepo, nil, bus)

	events := make(chan live.Event, 4)
	unsubscribe := bus.Subscribe("owner-1", func(ev live.Event) { events <- ev })
	defer unsubscribe()

	team, err := svc.CreateTeam(context.Background(), "owner-1", CreateTeamInput{
		Name:      "  Smashers  ",
		SportType: "badminton",
		Currency:  "USD",
		Location:  "Courtside Arena",
	})
	require.NoError(t, err)
	require.NotEmpty(t, team.ID)
	require.Equal(t, "Smashers", team.Name, "name is trimmed")

	ev := <-events
	require.Equal(t, live.CollectionTeams, ev.Collection)
}

func TestCreateTeam_Validation(t *testing.T) {
	svc := NewTeamService(newFakeTeamRepo(), nil, live.NewBus())

	tests := []struct {
		name      string
		input     CreateTeamInput
		wantField string
	}{
		{"missing name", CreateTeamInput{SportType: "badminton", Currency: "USD"}, "name"},
		{"short name", CreateTeamInput{Name: "A", SportType: "badminton", Currency: "USD"}, "name"},
		{"missing sport", CreateTeamInput{Name: "Smashers", Currency: "USD"}, "sportType"},
		{"unknown sport", CreateTeamInput{Name: "Smashers", SportType: "curling", Currency: "USD"}, "sportType"},
		{"missing currency", CreateTeamInput{Name: "Smashers", SportType: "badminton"}, "currency"},
		{"unknown currency", CreateTeamInput{Name: "Smashers", SportType: "badminton", Currency: "ZZZ"}, "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTeam(context.Background(), "owner-1", tt.input)
			require.ErrorIs(t, err, ErrValidationFailed)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestUpdateTeam_PartialFields(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	svc := NewTeamService(teamRepo, nil, live.NewBus())

	team, err := svc.CreateTeam(context.Background(), "owner-1", CreateTeamInput{
		Name:      "Smashers",
		SportType: "badminton",
		Currency:  "USD",
	})
	require.NoError(t, err)

	location := "New venue"
	updated, err := svc.UpdateTeam(context.Background(), "owner-1", team.ID, UpdateTeamInput{
		Location: &location,
	})
	require.NoError(t, err)
	require.Equal(t, "New venue", updated.Location)
	require.Equal(t, "Smashers", updated.Name, "untouched fields survive")
	require.Equal(t, "badminton", updated.SportType)
}

func TestDeleteTeam_OwnerScoped(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	svc := NewTeamService(teamRepo, nil, live.NewBus())

	team, err := svc.CreateTeam(context.Background(), "owner-1", CreateTeamInput{
		Name:      "Smashers",
		SportType: "badminton",
		Currency:  "USD",
	})
	require.NoError(t, err)

	err = svc.DeleteTeam(context.Background(), "owner-2", team.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)

	err = svc.DeleteTeam(context.Background(), "owner-1", team.ID)
	require.NoError(t, err)

	_, err = svc.GetTeam(context.Background(), "owner-1", team.ID)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestDeleteTeam_LeavesDependentsInPlace(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	playerRepo := newFakePlayerRepo()
	bus := live.NewBus()
	teamSvc := NewTeamService(teamRepo, nil, bus)
	playerSvc := NewPlayerService(playerRepo, teamRepo, bus)

	team, err := teamSvc.CreateTeam(context.Background(), "owner-1", CreateTeamInput{
		Name:      "Smashers",
		SportType: "badminton",
		Currency:  "USD",
	})
	require.NoError(t, err)

	player, err := playerSvc.CreatePlayer(context.Background(), "owner-1", CreatePlayerInput{
		TeamID: team.ID,
		Name:   "Alice",
	})
	require.NoError(t, err)

	require.NoError(t, teamSvc.DeleteTeam(context.Background(), "owner-1", team.ID))

	// the roster is orphaned, not deleted, and still queryable by team id
	players, err := playerSvc.ListTeamPlayers(context.Background(), "owner-1", team.ID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	require.Equal(t, player.ID, players[0].ID)
	require.Equal(t, team.ID, players[0].TeamID)
}

func TestUploadLogo_Disabled(t *testing.T) {
	teamRepo := newFakeTeamRepo()
	svc := NewTeamService(teamRepo, nil, live.NewBus())

	_, err := svc.UploadLogo(context.Background(), "owner-1", "team-1", "image/png", nil)
	require.ErrorIs(t, err, ErrUploadsDisabled)
}

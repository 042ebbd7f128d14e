package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Sabbir999/Team-budget/models"
)

var teamColumns = []string{
	"id", "owner_id", "name", "sport_type", "currency", "location",
	"schedule", "payment_method", "payment_details", "logo_key",
	"created_at", "updated_at",
}

func newTeamRepo(t *testing.T) (TeamRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTeamRepository(db), mock
}

func TestTeamRepository_Create(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectExec("INSERT INTO teams").
		WithArgs(
			sqlmock.AnyArg(), "owner-1", "Smashers", "badminton", "USD",
			"Court 4", "Tue 7pm", "upi", "smashers@upi",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	team := &models.Team{
		OwnerID:        "owner-1",
		Name:           "Smashers",
		SportType:      "badminton",
		Currency:       "USD",
		Location:       "Court 4",
		Schedule:       "Tue 7pm",
		PaymentMethod:  "upi",
		PaymentDetails: "smashers@upi",
	}
	require.NoError(t, repo.Create(context.Background(), team))

	// the repository stamps identity and timestamps itself
	require.NotEmpty(t, team.ID)
	require.False(t, team.CreatedAt.IsZero())
	require.Equal(t, team.CreatedAt, team.UpdatedAt)
	require.Equal(t, time.UTC, team.CreatedAt.Location())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_GetByID(t *testing.T) {
	repo, mock := newTeamRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM teams").
		WithArgs("owner-1", "team-1").
		WillReturnRows(sqlmock.NewRows(teamColumns).
			AddRow("team-1", "owner-1", "Smashers", "badminton", "USD",
				"", "", "", "", nil, now, now))

	team, err := repo.GetByID(context.Background(), "owner-1", "team-1")
	require.NoError(t, err)
	require.Equal(t, "Smashers", team.Name)
	require.Nil(t, team.LogoKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM teams").
		WithArgs("owner-1", "team-missing").
		WillReturnRows(sqlmock.NewRows(teamColumns))

	_, err := repo.GetByID(context.Background(), "owner-1", "team-missing")
	require.ErrorIs(t, err, ErrTeamNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_ListByOwner(t *testing.T) {
	repo, mock := newTeamRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM teams").
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows(teamColumns).
			AddRow("team-1", "owner-1", "Smashers", "badminton", "USD",
				"", "", "", "", nil, now, now).
			AddRow("team-2", "owner-1", "Strikers", "cricket", "EUR",
				"", "", "", "", "users/owner-1/teams/team-2/logo", now, now))

	teams, err := repo.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "team-1", teams[0].ID)
	require.NotNil(t, teams[1].LogoKey)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_ListByOwner_Empty(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM teams").
		WithArgs("owner-empty").
		WillReturnRows(sqlmock.NewRows(teamColumns))

	teams, err := repo.ListByOwner(context.Background(), "owner-empty")
	require.NoError(t, err)
	require.NotNil(t, teams, "empty collection, not null")
	require.Empty(t, teams)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectExec("UPDATE teams SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Team{
		ID:      "team-missing",
		OwnerID: "owner-1",
		Name:    "Smashers",
	})
	require.ErrorIs(t, err, ErrTeamNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Delete(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectExec("DELETE FROM teams").
		WithArgs("owner-1", "team-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "owner-1", "team-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_Delete_OwnerScoped(t *testing.T) {
	repo, mock := newTeamRepo(t)

	mock.ExpectExec("DELETE FROM teams").
		WithArgs("owner-2", "team-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "owner-2", "team-1")
	require.ErrorIs(t, err, ErrTeamNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

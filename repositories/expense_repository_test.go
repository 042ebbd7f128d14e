package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/Sabbir999/Team-budget/models"
)

var expenseTestColumns = []string{
	"id", "owner_id", "team_id", "sport", "month", "year", "fields",
	"players_count", "notes", "selections", "total", "per_person",
	"receipt_key", "created_at", "updated_at",
}

func newExpenseRepo(t *testing.T) (ExpenseRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresExpenseRepository(db), mock
}

func TestExpenseRepository_Create_MarshalsJSON(t *testing.T) {
	repo, mock := newExpenseRepo(t)

	mock.ExpectExec("INSERT INTO expenses").
		WithArgs(
			sqlmock.AnyArg(), "owner-1", "team-1", "badminton", "January", 2025,
			[]byte(`{"court":60}`), 6, "", []byte(`{"shuttlecock":[{"type":"Yonex"}]}`),
			70.0, 11.67, nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expense := &models.Expense{
		OwnerID:      "owner-1",
		TeamID:       "team-1",
		Sport:        "badminton",
		Month:        "January",
		Year:         2025,
		Fields:       map[string]float64{"court": 60},
		PlayersCount: 6,
		Selections: map[string][]models.Selection{
			"shuttlecock": {{Type: "Yonex"}},
		},
		Total:     70,
		PerPerson: 11.67,
	}
	require.NoError(t, repo.Create(context.Background(), expense))
	require.NotEmpty(t, expense.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_Create_NilFields(t *testing.T) {
	repo, mock := newExpenseRepo(t)

	// nil Fields is stored as an empty object, nil Selections as NULL
	mock.ExpectExec("INSERT INTO expenses").
		WithArgs(
			sqlmock.AnyArg(), "owner-1", "team-1", "tennis", "March", 2025,
			[]byte(`{}`), 0, "", []byte(nil),
			0.0, 0.0, nil, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	expense := &models.Expense{
		OwnerID: "owner-1",
		TeamID:  "team-1",
		Sport:   "tennis",
		Month:   "March",
		Year:    2025,
	}
	require.NoError(t, repo.Create(context.Background(), expense))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_GetByID_UnmarshalsJSON(t *testing.T) {
	repo, mock := newExpenseRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM expenses").
		WithArgs("owner-1", "exp-1").
		WillReturnRows(sqlmock.NewRows(expenseTestColumns).
			AddRow("exp-1", "owner-1", "team-1", "badminton", "January", 2025,
				[]byte(`{"court":60,"shuttlecockTotal":25.5}`), 6, "weekly session",
				[]byte(`{"shuttlecock":[{"type":"Custom","customName":"Club stock"}]}`),
				85.5, 14.25, nil, now, now))

	expense, err := repo.GetByID(context.Background(), "owner-1", "exp-1")
	require.NoError(t, err)
	require.Equal(t, 60.0, expense.Fields["court"])
	require.Equal(t, 25.5, expense.Fields["shuttlecockTotal"])
	require.Equal(t, "Club stock", expense.Selections["shuttlecock"][0].CustomName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_GetByID_NullJSON(t *testing.T) {
	repo, mock := newExpenseRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM expenses").
		WithArgs("owner-1", "exp-1").
		WillReturnRows(sqlmock.NewRows(expenseTestColumns).
			AddRow("exp-1", "owner-1", "team-1", "football", "May", 2025,
				nil, 11, "", nil, 0.0, 0.0, nil, now, now))

	expense, err := repo.GetByID(context.Background(), "owner-1", "exp-1")
	require.NoError(t, err)
	require.NotNil(t, expense.Fields, "fields default to an empty map")
	require.Empty(t, expense.Fields)
	require.Nil(t, expense.Selections)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newExpenseRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM expenses").
		WithArgs("owner-1", "exp-missing").
		WillReturnRows(sqlmock.NewRows(expenseTestColumns))

	_, err := repo.GetByID(context.Background(), "owner-1", "exp-missing")
	require.ErrorIs(t, err, ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_ListByTeam(t *testing.T) {
	repo, mock := newExpenseRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM expenses WHERE owner_id = \\$1 AND team_id = \\$2").
		WithArgs("owner-1", "team-1").
		WillReturnRows(sqlmock.NewRows(expenseTestColumns).
			AddRow("exp-1", "owner-1", "team-1", "badminton", "January", 2025,
				[]byte(`{"court":60}`), 6, "", nil, 60.0, 10.0, nil, now, now))

	expenses, err := repo.ListByTeam(context.Background(), "owner-1", "team-1")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.Equal(t, 60.0, expenses[0].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseRepository_UpdateReceiptKey_NotFound(t *testing.T) {
	repo, mock := newExpenseRepo(t)
	key := "users/owner-1/expenses/exp-missing/receipt"

	mock.ExpectExec("UPDATE expenses SET receipt_key").
		WithArgs(&key, sqlmock.AnyArg(), "owner-1", "exp-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateReceiptKey(context.Background(), "owner-1", "exp-missing", &key)
	require.ErrorIs(t, err, ErrExpenseNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/google/uuid"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Expense, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Expense, error)
	ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	UpdateReceiptKey(ctx context.Context, ownerID, id string, receiptKey *string) error
	Delete(ctx context.Context, ownerID, id string) error
}

type postgresExpenseRepository struct {
	db *sql.DB
}

func NewPostgresExpenseRepository(db *sql.DB) ExpenseRepository {
	return &postgresExpenseRepository{db: db}
}

const expenseColumns = `id, owner_id, team_id, sport, month, year, fields, players_count, notes, selections, total, per_person, receipt_key, created_at, updated_at`

func (r *postgresExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	expense.ID = uuid.NewString()
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	fieldsJSON, selectionsJSON, err := marshalExpenseJSON(expense)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.db.ExecContext(ctx, query,
		expense.ID,
		expense.OwnerID,
		expense.TeamID,
		expense.Sport,
		expense.Month,
		expense.Year,
		fieldsJSON,
		expense.PlayersCount,
		expense.Notes,
		selectionsJSON,
		expense.Total,
		expense.PerPerson,
		expense.ReceiptKey,
		expense.CreatedAt,
		expense.UpdatedAt,
	)
	return err
}

func (r *postgresExpenseRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	return expense, nil
}

func (r *postgresExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID)
}

func (r *postgresExpenseRepository) ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE owner_id = $1 AND team_id = $2 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID, teamID)
}

func (r *postgresExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().UTC()

	fieldsJSON, selectionsJSON, err := marshalExpenseJSON(expense)
	if err != nil {
		return err
	}

	query := `
		UPDATE expenses SET
			team_id = $1,
			sport = $2,
			month = $3,
			year = $4,
			fields = $5,
			players_count = $6,
			notes = $7,
			selections = $8,
			total = $9,
			per_person = $10,
			updated_at = $11
		WHERE owner_id = $12 AND id = $13`

	result, err := r.db.ExecContext(ctx, query,
		expense.TeamID,
		expense.Sport,
		expense.Month,
		expense.Year,
		fieldsJSON,
		expense.PlayersCount,
		expense.Notes,
		selectionsJSON,
		expense.Total,
		expense.PerPerson,
		expense.UpdatedAt,
		expense.OwnerID,
		expense.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *postgresExpenseRepository) UpdateReceiptKey(ctx context.Context, ownerID, id string, receiptKey *string) error {
	query := `UPDATE expenses SET receipt_key = $1, updated_at = $2 WHERE owner_id = $3 AND id = $4`
	result, err := r.db.ExecContext(ctx, query, receiptKey, time.Now().UTC(), ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *postgresExpenseRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM expenses WHERE owner_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (r *postgresExpenseRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		expense, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", scanErr)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}

func marshalExpenseJSON(expense *models.Expense) ([]byte, []byte, error) {
	if expense.Fields == nil {
		expense.Fields = map[string]float64{}
	}
	fieldsJSON, err := json.Marshal(expense.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal expense fields: %w", err)
	}

	var selectionsJSON []byte
	if expense.Selections != nil {
		selectionsJSON, err = json.Marshal(expense.Selections)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal expense selections: %w", err)
		}
	}
	return fieldsJSON, selectionsJSON, nil
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		expense        models.Expense
		fieldsJSON     []byte
		selectionsJSON []byte
	)

	err := row.Scan(
		&expense.ID,
		&expense.OwnerID,
		&expense.TeamID,
		&expense.Sport,
		&expense.Month,
		&expense.Year,
		&fieldsJSON,
		&expense.PlayersCount,
		&expense.Notes,
		&selectionsJSON,
		&expense.Total,
		&expense.PerPerson,
		&expense.ReceiptKey,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(fieldsJSON) > 0 {
		if err := json.Unmarshal(fieldsJSON, &expense.Fields); err != nil {
			return nil, fmt.Errorf("failed to unmarshal expense fields: %w", err)
		}
	}
	if expense.Fields == nil {
		expense.Fields = map[string]float64{}
	}
	if len(selectionsJSON) > 0 {
		if err := json.Unmarshal(selectionsJSON, &expense.Selections); err != nil {
			return nil, fmt.Errorf("failed to unmarshal expense selections: %w", err)
		}
	}
	return &expense, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/google/uuid"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Payment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Payment, error)
	ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Payment, error)
	ListByPlayer(ctx context.Context, ownerID, playerID string) ([]models.Payment, error)
	// ExistsForPeriod backs the advisory duplicate check: same player, same
	// month, same year. It is not a uniqueness constraint.
	ExistsForPeriod(ctx context.Context, ownerID, playerID, month string, year int) (bool, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, ownerID, id string) error
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

const paymentColumns = `id, owner_id, team_id, player_id, month, year, amount, status, payment_method, notes, paid_at, created_at, updated_at`

func (r *postgresPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = uuid.NewString()
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.OwnerID,
		payment.TeamID,
		payment.PlayerID,
		payment.Month,
		payment.Year,
		payment.Amount,
		payment.Status,
		payment.PaymentMethod,
		payment.Notes,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	return err
}

func (r *postgresPaymentRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return payment, nil
}

func (r *postgresPaymentRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID)
}

func (r *postgresPaymentRepository) ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = $1 AND team_id = $2 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID, teamID)
}

func (r *postgresPaymentRepository) ListByPlayer(ctx context.Context, ownerID, playerID string) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE owner_id = $1 AND player_id = $2 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID, playerID)
}

func (r *postgresPaymentRepository) ExistsForPeriod(ctx context.Context, ownerID, playerID, month string, year int) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM payments
		WHERE owner_id = $1 AND player_id = $2 AND month = $3 AND year = $4
	)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ownerID, playerID, month, year).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payment period: %w", err)
	}
	return exists, nil
}

func (r *postgresPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	payment.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE payments SET
			team_id = $1,
			player_id = $2,
			month = $3,
			year = $4,
			amount = $5,
			status = $6,
			payment_method = $7,
			notes = $8,
			paid_at = $9,
			updated_at = $10
		WHERE owner_id = $11 AND id = $12`

	result, err := r.db.ExecContext(ctx, query,
		payment.TeamID,
		payment.PlayerID,
		payment.Month,
		payment.Year,
		payment.Amount,
		payment.Status,
		payment.PaymentMethod,
		payment.Notes,
		payment.PaidAt,
		payment.UpdatedAt,
		payment.OwnerID,
		payment.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *postgresPaymentRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM payments WHERE owner_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *postgresPaymentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		payment, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", scanErr)
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.OwnerID,
		&payment.TeamID,
		&payment.PlayerID,
		&payment.Month,
		&payment.Year,
		&payment.Amount,
		&payment.Status,
		&payment.PaymentMethod,
		&payment.Notes,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

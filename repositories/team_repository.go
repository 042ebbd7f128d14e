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

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Team, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, ownerID, id string, logoKey *string) error
	Delete(ctx context.Context, ownerID, id string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	team.ID = uuid.NewString()
	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	query := `
		INSERT INTO teams (id, owner_id, name, sport_type, currency, location, schedule, payment_method, payment_details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		team.ID,
		team.OwnerID,
		team.Name,
		team.SportType,
		team.Currency,
		team.Location,
		team.Schedule,
		team.PaymentMethod,
		team.PaymentDetails,
		team.CreatedAt,
		team.UpdatedAt,
	)
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Team, error) {
	query := `
		SELECT id, owner_id, name, sport_type, currency, location, schedule, payment_method, payment_details, logo_key, created_at, updated_at
		FROM teams
		WHERE owner_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return team, nil
}

// ListByOwner returns the complete teams collection of one user in insertion
// order. Subscribers always receive this full snapshot, never a diff.
func (r *postgresTeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Team, error) {
	query := `
		SELECT id, owner_id, name, sport_type, currency, location, schedule, payment_method, payment_details, logo_key, created_at, updated_at
		FROM teams
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, *team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE teams SET
			name = $1,
			sport_type = $2,
			currency = $3,
			location = $4,
			schedule = $5,
			payment_method = $6,
			payment_details = $7,
			updated_at = $8
		WHERE owner_id = $9 AND id = $10`

	result, err := r.db.ExecContext(ctx, query,
		team.Name,
		team.SportType,
		team.Currency,
		team.Location,
		team.Schedule,
		team.PaymentMethod,
		team.PaymentDetails,
		team.UpdatedAt,
		team.OwnerID,
		team.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, ownerID, id string, logoKey *string) error {
	query := `UPDATE teams SET logo_key = $1, updated_at = $2 WHERE owner_id = $3 AND id = $4`
	result, err := r.db.ExecContext(ctx, query, logoKey, time.Now().UTC(), ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// Delete removes only the team row. Dependent players, expenses and payments
// keep their team_id and stay queryable.
func (r *postgresTeamRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM teams WHERE owner_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var team models.Team
	err := row.Scan(
		&team.ID,
		&team.OwnerID,
		&team.Name,
		&team.SportType,
		&team.Currency,
		&team.Location,
		&team.Schedule,
		&team.PaymentMethod,
		&team.PaymentDetails,
		&team.LogoKey,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

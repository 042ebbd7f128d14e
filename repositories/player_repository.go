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

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Player, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Player, error)
	ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, ownerID, id string) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, owner_id, team_id, name, email, phone, notes, is_active, created_at, updated_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	player.ID = uuid.NewString()
	now := time.Now().UTC()
	player.CreatedAt = now
	player.UpdatedAt = now

	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		player.ID,
		player.OwnerID,
		player.TeamID,
		player.Name,
		player.Email,
		player.Phone,
		player.Notes,
		player.IsActive,
		player.CreatedAt,
		player.UpdatedAt,
	)
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE owner_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, ownerID, id)
	player, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID)
}

// ListByTeam keeps returning rows for a teamId even after that team row was
// deleted; orphans are part of the data model.
func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, ownerID, teamID string) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE owner_id = $1 AND team_id = $2 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, ownerID, teamID)
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	player.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE players SET
			team_id = $1,
			name = $2,
			email = $3,
			phone = $4,
			notes = $5,
			is_active = $6,
			updated_at = $7
		WHERE owner_id = $8 AND id = $9`

	result, err := r.db.ExecContext(ctx, query,
		player.TeamID,
		player.Name,
		player.Email,
		player.Phone,
		player.Notes,
		player.IsActive,
		player.UpdatedAt,
		player.OwnerID,
		player.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM players WHERE owner_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (r *postgresPlayerRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		player, scanErr := scanPlayer(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var player models.Player
	err := row.Scan(
		&player.ID,
		&player.OwnerID,
		&player.TeamID,
		&player.Name,
		&player.Email,
		&player.Phone,
		&player.Notes,
		&player.IsActive,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &player, nil
}

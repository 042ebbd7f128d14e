package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sabbir999/Team-budget/models"
)

var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository persists the per-user restore hints (last selected
// team and sport). One row per user, written with upsert semantics.
type PreferenceRepository interface {
	Get(ctx context.Context, ownerID string) (*models.Preference, error)
	Upsert(ctx context.Context, pref *models.Preference) error
}

type postgresPreferenceRepository struct {
	db *sql.DB
}

func NewPostgresPreferenceRepository(db *sql.DB) PreferenceRepository {
	return &postgresPreferenceRepository{db: db}
}

func (r *postgresPreferenceRepository) Get(ctx context.Context, ownerID string) (*models.Preference, error) {
	query := `
		SELECT owner_id, current_team_id, current_sport, updated_at
		FROM preferences
		WHERE owner_id = $1`

	var pref models.Preference
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&pref.OwnerID,
		&pref.CurrentTeamID,
		&pref.CurrentSport,
		&pref.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("failed to scan preference: %w", err)
	}
	return &pref, nil
}

func (r *postgresPreferenceRepository) Upsert(ctx context.Context, pref *models.Preference) error {
	pref.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO preferences (owner_id, current_team_id, current_sport, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id) DO UPDATE SET
			current_team_id = EXCLUDED.current_team_id,
			current_sport = EXCLUDED.current_sport,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		pref.OwnerID,
		pref.CurrentTeamID,
		pref.CurrentSport,
		pref.UpdatedAt,
	)
	return err
}

package models

import "time"

// Preference is the per-user restore hint: the last selected team and sport.
// It is consulted when a session starts and never treated as source of truth.
type Preference struct {
	OwnerID       string    `json:"-" db:"owner_id"`
	CurrentTeamID string    `json:"currentTeamId,omitempty" db:"current_team_id"`
	CurrentSport  string    `json:"currentSport,omitempty" db:"current_sport"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

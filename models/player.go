package models

import "time"

type Player struct {
	ID       string `json:"id" db:"id"`
	OwnerID  string `json:"-" db:"owner_id"`
	TeamID   string `json:"teamId" db:"team_id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email,omitempty" db:"email"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Notes    string `json:"notes,omitempty" db:"notes"`
	IsActive bool   `json:"isActive" db:"is_active"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

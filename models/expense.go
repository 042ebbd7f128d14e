package models

import "time"

// Selection is one entry of a dynamic (non-monetary) sport field, e.g. a
// shuttlecock brand used during a session. CustomName is only set when the
// chosen option is "Custom".
type Selection struct {
	Type       string `json:"type"`
	CustomName string `json:"customName,omitempty"`
}

// Expense is one recorded team cost for a month/year period. Which keys may
// appear in Fields is dictated by the sport registry; Total and PerPerson are
// derived server-side and never trusted from the caller.
type Expense struct {
	ID           string                 `json:"id" db:"id"`
	OwnerID      string                 `json:"-" db:"owner_id"`
	TeamID       string                 `json:"teamId" db:"team_id"`
	Sport        string                 `json:"sport" db:"sport"`
	Month        string                 `json:"month" db:"month"`
	Year         int                    `json:"year" db:"year"`
	Fields       map[string]float64     `json:"fields" db:"fields"`
	PlayersCount int                    `json:"playersCount" db:"players_count"`
	Notes        string                 `json:"notes,omitempty" db:"notes"`
	Selections   map[string][]Selection `json:"selections,omitempty" db:"selections"`

	Total     float64 `json:"total" db:"total"`
	PerPerson float64 `json:"perPerson" db:"per_person"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	ReceiptKey *string `json:"-" db:"receipt_key"`
	ReceiptURL *string `json:"receiptUrl,omitempty" db:"-"`
}

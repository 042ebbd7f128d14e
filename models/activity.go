package models

import "time"

const (
	ActivityPlayerAdded     = "player_added"
	ActivityExpenseRecorded = "expense_recorded"
	ActivityPaymentRecorded = "payment_recorded"
)

// ActivityItem is one entry of the recent-activity feed.
type ActivityItem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

package models

import "time"

const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusPartial = "partial"
	PaymentStatusUnpaid  = "unpaid"
)

// PaymentStatuses lists the statuses accepted on write.
var PaymentStatuses = []string{
	PaymentStatusPaid,
	PaymentStatusPending,
	PaymentStatusPartial,
	PaymentStatusUnpaid,
}

// CollectedStatuses are the statuses that count toward collected totals.
// "completed" and "confirmed" never originate from our forms but existed in
// imported data, so the aggregation accepts them.
var CollectedStatuses = map[string]bool{
	"paid":      true,
	"completed": true,
	"confirmed": true,
}

type Payment struct {
	ID            string  `json:"id" db:"id"`
	OwnerID       string  `json:"-" db:"owner_id"`
	TeamID        string  `json:"teamId" db:"team_id"`
	PlayerID      string  `json:"playerId" db:"player_id"`
	Month         string  `json:"month" db:"month"`
	Year          int     `json:"year" db:"year"`
	Amount        float64 `json:"amount" db:"amount"`
	Status        string  `json:"status" db:"status"`
	PaymentMethod string  `json:"paymentMethod" db:"payment_method"`
	Notes         string  `json:"notes,omitempty" db:"notes"`

	PaidAt    *time.Time `json:"paidAt,omitempty" db:"paid_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// Package stats contains the dashboard aggregation math: pure functions over
// in-memory collections, no I/O. Everything the financial overview and the
// recent-activity feed display is computed here.
package stats

import (
	"math"
	"sort"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/sports"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalExpenses sums the derived totals of all expenses.
func TotalExpenses(expenses []models.Expense) float64 {
	var sum float64
	for _, e := range expenses {
		sum += e.Total
	}
	return Round2(sum)
}

// TotalCollected sums the amounts of payments whose status counts as
// collected (paid, completed, confirmed). Every other status is outstanding.
func TotalCollected(payments []models.Payment) float64 {
	var sum float64
	for _, p := range payments {
		if models.CollectedStatuses[p.Status] {
			sum += p.Amount
		}
	}
	return Round2(sum)
}

// Outstanding is expenses minus collected. Positive means money is still
// owed, negative means the team overpaid.
func Outstanding(expenses []models.Expense, payments []models.Payment) float64 {
	return Round2(TotalExpenses(expenses) - TotalCollected(payments))
}

// OutstandingLabel maps the sign of the outstanding amount to the label the
// financial overview shows next to it.
func OutstandingLabel(outstanding float64) string {
	switch {
	case outstanding > 0:
		return "Amount Due"
	case outstanding < 0:
		return "Overpaid"
	default:
		return "All payments collected"
	}
}

// CollectionRate is collected over expenses as a percentage, 0 when there
// are no expenses.
func CollectionRate(expenses []models.Expense, payments []models.Payment) float64 {
	total := TotalExpenses(expenses)
	if total <= 0 {
		return 0
	}
	return Round2(TotalCollected(payments) / total * 100)
}

// PlayerBalance is the per-player standing: share of every expense's
// per-person split (based on the playersCount snapshot recorded on the
// expense, not the live roster) against what the player actually paid.
type PlayerBalance struct {
	TotalDue  float64 `json:"totalDue"`
	TotalPaid float64 `json:"totalPaid"`
	Balance   float64 `json:"balance"`
	Status    string  `json:"status"` // paid, unpaid or even
}

func CalculatePlayerBalance(playerID string, expenses []models.Expense, payments []models.Payment) PlayerBalance {
	var due, paid float64
	for _, e := range expenses {
		if e.PlayersCount > 0 {
			due += e.Total / float64(e.PlayersCount)
		}
	}
	for _, p := range payments {
		if p.PlayerID == playerID {
			paid += p.Amount
		}
	}
	balance := Round2(paid - due)
	status := "even"
	if balance > 0 {
		status = "paid"
	} else if balance < 0 {
		status = "unpaid"
	}
	return PlayerBalance{
		TotalDue:  Round2(due),
		TotalPaid: Round2(paid),
		Balance:   balance,
		Status:    status,
	}
}

// CategoryBreakdown sums spending per field category across expenses. Each
// expense is bucketed by its own sport's schema, so mixed-sport accounts
// still get one merged breakdown.
func CategoryBreakdown(expenses []models.Expense) map[string]float64 {
	out := make(map[string]float64)
	for _, e := range expenses {
		for category, amount := range sports.CategoryTotals(e.Sport, e.Fields) {
			out[category] += amount
		}
	}
	for category, amount := range out {
		out[category] = Round2(amount)
	}
	return out
}

// FilterExpensesByPeriod keeps expenses recorded for the given month/year.
func FilterExpensesByPeriod(expenses []models.Expense, month string, year int) []models.Expense {
	out := make([]models.Expense, 0)
	for _, e := range expenses {
		if e.Month == month && e.Year == year {
			out = append(out, e)
		}
	}
	return out
}

// FilterPaymentsByPeriod keeps payments recorded for the given month/year.
func FilterPaymentsByPeriod(payments []models.Payment, month string, year int) []models.Payment {
	out := make([]models.Payment, 0)
	for _, p := range payments {
		if p.Month == month && p.Year == year {
			out = append(out, p)
		}
	}
	return out
}

// RecentActivity merges player, expense and payment events into one feed
// sorted by timestamp descending and returns the first n. Items without a
// usable timestamp are dropped rather than sorted to either end.
func RecentActivity(players []models.Player, expenses []models.Expense, payments []models.Payment, n int) []models.ActivityItem {
	items := make([]models.ActivityItem, 0, len(players)+len(expenses)+len(payments))

	for _, p := range players {
		if p.CreatedAt.IsZero() {
			continue
		}
		items = append(items, models.ActivityItem{
			Type:      models.ActivityPlayerAdded,
			Title:     "New player added",
			Detail:    p.Name,
			Timestamp: p.CreatedAt,
		})
	}
	for _, e := range expenses {
		if e.CreatedAt.IsZero() {
			continue
		}
		items = append(items, models.ActivityItem{
			Type:      models.ActivityExpenseRecorded,
			Title:     "Expense recorded",
			Detail:    e.Month,
			Amount:    e.Total,
			Timestamp: e.CreatedAt,
		})
	}
	for _, p := range payments {
		ts := p.CreatedAt
		if p.PaidAt != nil && !p.PaidAt.IsZero() {
			ts = *p.PaidAt
		}
		if ts.IsZero() {
			continue
		}
		title := "Payment recorded"
		if models.CollectedStatuses[p.Status] {
			title = "Payment received"
		}
		items = append(items, models.ActivityItem{
			Type:      models.ActivityPaymentRecorded,
			Title:     title,
			Amount:    p.Amount,
			Timestamp: ts,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})

	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

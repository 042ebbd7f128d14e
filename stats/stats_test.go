package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Sabbir999/Team-budget/models"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"no rounding needed", 10.25, 10.25},
		{"round up", 10.255, 10.26},
		{"round down", 10.254, 10.25},
		{"float artifact", 0.1 + 0.2, 0.3},
		{"negative", -10.255, -10.26},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Round2(tt.in), 1e-9)
		})
	}
}

func TestTotalsAndOutstanding(t *testing.T) {
	expenses := []models.Expense{
		{Total: 120.50},
		{Total: 79.50},
	}
	payments := []models.Payment{
		{Amount: 50, Status: models.PaymentStatusPaid},
		{Amount: 25, Status: "completed"},
		{Amount: 25, Status: "confirmed"},
		{Amount: 40, Status: models.PaymentStatusPending},
		{Amount: 10, Status: models.PaymentStatusPartial},
	}

	require.InDelta(t, 200.0, TotalExpenses(expenses), 1e-9)
	// pending and partial amounts do not count as collected
	require.InDelta(t, 100.0, TotalCollected(payments), 1e-9)
	require.InDelta(t, 100.0, Outstanding(expenses, payments), 1e-9)
	require.InDelta(t, 50.0, CollectionRate(expenses, payments), 1e-9)
}

func TestOutstandingLabel(t *testing.T) {
	require.Equal(t, "Amount Due", OutstandingLabel(12.5))
	require.Equal(t, "Overpaid", OutstandingLabel(-0.01))
	require.Equal(t, "All payments collected", OutstandingLabel(0))
}

func TestCollectionRate_NoExpenses(t *testing.T) {
	payments := []models.Payment{{Amount: 100, Status: models.PaymentStatusPaid}}

	// no division by zero, no bogus percentage
	require.Zero(t, CollectionRate(nil, payments))
	require.Zero(t, CollectionRate([]models.Expense{}, payments))
}

func TestCalculatePlayerBalance(t *testing.T) {
	expenses := []models.Expense{
		{Total: 100, PlayersCount: 4}, // 25 per head
		{Total: 60, PlayersCount: 3},  // 20 per head
		{Total: 50, PlayersCount: 0},  // no split, contributes nothing
	}
	payments := []models.Payment{
		{PlayerID: "p1", Amount: 30},
		{PlayerID: "p1", Amount: 10},
		{PlayerID: "p2", Amount: 45},
	}

	b := CalculatePlayerBalance("p1", expenses, payments)
	require.InDelta(t, 45.0, b.TotalDue, 1e-9)
	require.InDelta(t, 40.0, b.TotalPaid, 1e-9)
	require.InDelta(t, -5.0, b.Balance, 1e-9)
	require.Equal(t, "unpaid", b.Status)

	b = CalculatePlayerBalance("p2", expenses, payments)
	require.Equal(t, "even", b.Status)

	b = CalculatePlayerBalance("p3", expenses, payments)
	require.Equal(t, "unpaid", b.Status)
	require.Zero(t, b.TotalPaid)
}

func TestFilterByPeriod(t *testing.T) {
	expenses := []models.Expense{
		{ID: "e1", Month: "January", Year: 2025},
		{ID: "e2", Month: "January", Year: 2024},
		{ID: "e3", Month: "February", Year: 2025},
	}
	payments := []models.Payment{
		{ID: "p1", Month: "January", Year: 2025},
		{ID: "p2", Month: "March", Year: 2025},
	}

	gotE := FilterExpensesByPeriod(expenses, "January", 2025)
	require.Len(t, gotE, 1)
	require.Equal(t, "e1", gotE[0].ID)

	gotP := FilterPaymentsByPeriod(payments, "January", 2025)
	require.Len(t, gotP, 1)
	require.Equal(t, "p1", gotP[0].ID)
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []models.Expense{
		{Sport: "badminton", Fields: map[string]float64{"indoor": 60, "shuttlecock": 25.5}},
		{Sport: "football", Fields: map[string]float64{"field": 100, "balls": 40, "referee": 30}},
	}

	got := CategoryBreakdown(expenses)
	require.Equal(t, 160.0, got["venue"])
	require.Equal(t, 65.5, got["equipment"])
	require.Equal(t, 30.0, got["personnel"])

	require.Empty(t, CategoryBreakdown(nil))
}

func TestRecentActivity(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	paidAt := base.Add(3 * time.Hour)

	players := []models.Player{
		{Name: "Alice", CreatedAt: base.Add(1 * time.Hour)},
		{Name: "Ghost"}, // zero timestamp, must be dropped
	}
	expenses := []models.Expense{
		{Month: "June", Total: 80, CreatedAt: base.Add(2 * time.Hour)},
	}
	payments := []models.Payment{
		// PaidAt takes precedence over CreatedAt
		{Amount: 20, Status: models.PaymentStatusPaid, CreatedAt: base, PaidAt: &paidAt},
		{Amount: 15, Status: models.PaymentStatusPending, CreatedAt: base},
	}

	items := RecentActivity(players, expenses, payments, 10)
	require.Len(t, items, 4)

	// newest first
	require.Equal(t, models.ActivityPaymentRecorded, items[0].Type)
	require.Equal(t, "Payment received", items[0].Title)
	require.Equal(t, paidAt, items[0].Timestamp)

	require.Equal(t, "Expense recorded", items[1].Title)
	require.Equal(t, "New player added", items[2].Title)
	require.Equal(t, "Payment recorded", items[3].Title)
}

func TestRecentActivity_Limit(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	var players []models.Player
	for i := 0; i < 15; i++ {
		players = append(players, models.Player{
			Name:      "P",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	items := RecentActivity(players, nil, nil, 10)
	require.Len(t, items, 10)
	require.Equal(t, base.Add(14*time.Minute), items[0].Timestamp)
}

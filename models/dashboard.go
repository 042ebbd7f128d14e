package models

type DashboardStats struct {
	TotalExpenses    float64 `json:"total_expenses"`
	TotalCollected   float64 `json:"total_collected"`
	Outstanding      float64 `json:"outstanding"`
	OutstandingLabel string  `json:"outstanding_label"`
	CollectionRate   float64 `json:"collection_rate"`
	TeamsTotal       int     `json:"teams_total"`
	PlayersTotal     int     `json:"players_total"`
	ActivePlayers    int     `json:"active_players"`
	ExpensesTotal    int     `json:"expenses_total"`
	PaymentsTotal    int     `json:"payments_total"`

	CategoryBreakdown map[string]float64 `json:"category_breakdown"`
	RecentActivity    []ActivityItem     `json:"recent_activity"`
}

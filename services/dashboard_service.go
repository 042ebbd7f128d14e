package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
	"github.com/Sabbir999/Team-budget/stats"
)

const recentActivityLimit = 10

type DashboardService interface {
	// GetStats aggregates the dashboard for one owner. When teamID is empty
	// the whole account is summed, including rows pointing at deleted teams.
	GetStats(ctx context.Context, ownerID, teamID string) (*models.DashboardStats, error)
	// GetPlayerBalance sums what one player owes across expense splits
	// against what they have paid.
	GetPlayerBalance(ctx context.Context, ownerID, playerID string) (*stats.PlayerBalance, error)
}

type dashboardService struct {
	teamRepo    repositories.TeamRepository
	playerRepo  repositories.PlayerRepository
	expenseRepo repositories.ExpenseRepository
	paymentRepo repositories.PaymentRepository
}

func NewDashboardService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	expenseRepo repositories.ExpenseRepository,
	paymentRepo repositories.PaymentRepository,
) DashboardService {
	return &dashboardService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, ownerID, teamID string) (*models.DashboardStats, error) {
	var (
		teams    []models.Team
		players  []models.Player
		expenses []models.Expense
		payments []models.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		if teamID == "" {
			players, err = s.playerRepo.ListByOwner(gctx, ownerID)
		} else {
			players, err = s.playerRepo.ListByTeam(gctx, ownerID, teamID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if teamID == "" {
			expenses, err = s.expenseRepo.ListByOwner(gctx, ownerID)
		} else {
			expenses, err = s.expenseRepo.ListByTeam(gctx, ownerID, teamID)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if teamID == "" {
			payments, err = s.paymentRepo.ListByOwner(gctx, ownerID)
		} else {
			payments, err = s.paymentRepo.ListByTeam(gctx, ownerID, teamID)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activePlayers := 0
	for _, p := range players {
		if p.IsActive {
			activePlayers++
		}
	}

	outstanding := stats.Outstanding(expenses, payments)
	result := &models.DashboardStats{
		TotalExpenses:     stats.TotalExpenses(expenses),
		TotalCollected:    stats.TotalCollected(payments),
		Outstanding:       outstanding,
		OutstandingLabel:  stats.OutstandingLabel(outstanding),
		CollectionRate:    stats.CollectionRate(expenses, payments),
		TeamsTotal:        len(teams),
		PlayersTotal:      len(players),
		ActivePlayers:     activePlayers,
		ExpensesTotal:     len(expenses),
		PaymentsTotal:     len(payments),
		CategoryBreakdown: stats.CategoryBreakdown(expenses),
		RecentActivity:    stats.RecentActivity(players, expenses, payments, recentActivityLimit),
	}
	return result, nil
}

func (s *dashboardService) GetPlayerBalance(ctx context.Context, ownerID, playerID string) (*stats.PlayerBalance, error) {
	player, err := s.playerRepo.GetByID(ctx, ownerID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	var (
		expenses []models.Expense
		payments []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.ListByTeam(gctx, ownerID, player.TeamID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByPlayer(gctx, ownerID, playerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balance := stats.CalculatePlayerBalance(playerID, expenses, payments)
	return &balance, nil
}

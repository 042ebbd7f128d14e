package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
	"github.com/Sabbir999/Team-budget/sports"
	"github.com/Sabbir999/Team-budget/stats"
	"github.com/Sabbir999/Team-budget/storage"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, ownerID string, input CreateExpenseInput) (*models.Expense, error)
	GetExpense(ctx context.Context, ownerID, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error)
	ListTeamExpenses(ctx context.Context, ownerID, teamID string) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, ownerID, expenseID string, input UpdateExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, ownerID, expenseID string) error
	UploadReceipt(ctx context.Context, ownerID, expenseID, contentType string, file io.Reader) (*models.Expense, error)
}

type CreateExpenseInput struct {
	TeamID       string                        `json:"teamId"`
	Sport        string                        `json:"sport"`
	Month        string                        `json:"month"`
	Year         int                           `json:"year"`
	Fields       map[string]float64            `json:"fields"`
	PlayersCount int                           `json:"playersCount"`
	Notes        string                        `json:"notes"`
	Selections   map[string][]models.Selection `json:"selections"`
}

type UpdateExpenseInput struct {
	Sport        *string                        `json:"sport"`
	Month        *string                        `json:"month"`
	Year         *int                           `json:"year"`
	Fields       *map[string]float64            `json:"fields"`
	PlayersCount *int                           `json:"playersCount"`
	Notes        *string                        `json:"notes"`
	Selections   *map[string][]models.Selection `json:"selections"`
}

type expenseService struct {
	expenseRepo      repositories.ExpenseRepository
	teamRepo         repositories.TeamRepository
	uploader         storage.FileUploader
	bus              *live.Bus
	enforceTeamSport bool
}

func NewExpenseService(expenseRepo repositories.ExpenseRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader, bus *live.Bus, enforceTeamSport bool) ExpenseService {
	return &expenseService{
		expenseRepo:      expenseRepo,
		teamRepo:         teamRepo,
		uploader:         uploader,
		bus:              bus,
		enforceTeamSport: enforceTeamSport,
	}
}

// recomputeTotals rewrites Total and PerPerson from the monetary fields the
// sport registry declares as counting toward the total. Caller-provided
// values for either field are always discarded.
func recomputeTotals(expense *models.Expense) {
	var total float64
	for _, field := range sports.TotalFields(expense.Sport) {
		total += expense.Fields[field]
	}
	expense.Total = stats.Round2(total)
	if expense.PlayersCount > 0 {
		expense.PerPerson = stats.Round2(expense.Total / float64(expense.PlayersCount))
	} else {
		expense.PerPerson = 0
	}
}

func (s *expenseService) validateExpense(v *ValidationError, expense *models.Expense) {
	if expense.Month == "" {
		v.add("month", "Month is required")
	} else if !models.ValidMonth(expense.Month) {
		v.add("month", "Unknown month")
	}
	if expense.Year < models.MinYear || expense.Year > models.MaxYear {
		v.add("year", fmt.Sprintf("Year must be between %d and %d", models.MinYear, models.MaxYear))
	}
	if expense.PlayersCount < 0 {
		v.add("playersCount", "Players count cannot be negative")
	}
	if expense.Sport != "" && !sports.Known(expense.Sport) {
		v.add("sport", "Unknown sport")
	}

	hasPositive := false
	for _, field := range sports.TotalFields(expense.Sport) {
		if amount, ok := expense.Fields[field]; ok {
			if amount < 0 {
				v.add("fields."+field, "Amount cannot be negative")
			} else if amount > 0 {
				hasPositive = true
			}
		}
	}
	if !hasPositive {
		v.add("fields", "At least one expense amount is required")
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, ownerID string, input CreateExpenseInput) (*models.Expense, error) {
	if input.TeamID == "" {
		v := newValidationError()
		v.add("teamId", "Team is required")
		return nil, v
	}

	team, err := s.teamRepo.GetByID(ctx, ownerID, input.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	sport := input.Sport
	if sport == "" {
		sport = team.SportType
	}

	expense := &models.Expense{
		OwnerID:      ownerID,
		TeamID:       input.TeamID,
		Sport:        sport,
		Month:        input.Month,
		Year:         input.Year,
		Fields:       input.Fields,
		PlayersCount: input.PlayersCount,
		Notes:        input.Notes,
		Selections:   input.Selections,
	}
	if expense.Fields == nil {
		expense.Fields = map[string]float64{}
	}

	v := newValidationError()
	s.validateExpense(v, expense)
	if s.enforceTeamSport && expense.Sport != team.SportType {
		v.add("sport", "Expense sport must match the team sport")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	recomputeTotals(expense)

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionExpenses})
	s.populateReceiptURL(expense)
	return expense, nil
}

func (s *expenseService) GetExpense(ctx context.Context, ownerID, expenseID string) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	s.populateReceiptURL(expense)
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, ownerID string) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		s.populateReceiptURL(&expenses[i])
	}
	return expenses, nil
}

func (s *expenseService) ListTeamExpenses(ctx context.Context, ownerID, teamID string) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByTeam(ctx, ownerID, teamID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		s.populateReceiptURL(&expenses[i])
	}
	return expenses, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, ownerID, expenseID string, input UpdateExpenseInput) (*models.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	if input.Sport != nil {
		expense.Sport = *input.Sport
	}
	if input.Month != nil {
		expense.Month = *input.Month
	}
	if input.Year != nil {
		expense.Year = *input.Year
	}
	if input.Fields != nil {
		expense.Fields = *input.Fields
	}
	if input.PlayersCount != nil {
		expense.PlayersCount = *input.PlayersCount
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}
	if input.Selections != nil {
		expense.Selections = *input.Selections
	}
	if expense.Fields == nil {
		expense.Fields = map[string]float64{}
	}

	v := newValidationError()
	s.validateExpense(v, expense)
	if s.enforceTeamSport {
		team, teamErr := s.teamRepo.GetByID(ctx, ownerID, expense.TeamID)
		if teamErr == nil && expense.Sport != team.SportType {
			v.add("sport", "Expense sport must match the team sport")
		}
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	recomputeTotals(expense)

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionExpenses})
	s.populateReceiptURL(expense)
	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, ownerID, expenseID string) error {
	if err := s.expenseRepo.Delete(ctx, ownerID, expenseID); err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionExpenses})
	return nil
}

func (s *expenseService) UploadReceipt(ctx context.Context, ownerID, expenseID, contentType string, file io.Reader) (*models.Expense, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	expense, err := s.expenseRepo.GetByID(ctx, ownerID, expenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrExpenseNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("users/%s/expenses/%s/receipt", ownerID, expenseID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	if err := s.expenseRepo.UpdateReceiptKey(ctx, ownerID, expenseID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store receipt key: %w", err)
	}
	expense.ReceiptKey = &result.Key

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionExpenses})
	s.populateReceiptURL(expense)
	return expense, nil
}

func (s *expenseService) populateReceiptURL(expense *models.Expense) {
	if expense != nil && expense.ReceiptKey != nil && *expense.ReceiptKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*expense.ReceiptKey)
		if url != "" {
			expense.ReceiptURL = &url
		}
	}
}

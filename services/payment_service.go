package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
)

type PaymentService interface {
	// CreatePayment records a payment. The returned bool is an advisory
	// duplicate warning: true when the player already has a payment for the
	// same month and year. The write always goes through.
	CreatePayment(ctx context.Context, ownerID string, input CreatePaymentInput) (*models.Payment, bool, error)
	GetPayment(ctx context.Context, ownerID, paymentID string) (*models.Payment, error)
	ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error)
	ListTeamPayments(ctx context.Context, ownerID, teamID string) ([]models.Payment, error)
	ListPlayerPayments(ctx context.Context, ownerID, playerID string) ([]models.Payment, error)
	UpdatePayment(ctx context.Context, ownerID, paymentID string, input UpdatePaymentInput) (*models.Payment, error)
	DeletePayment(ctx context.Context, ownerID, paymentID string) error
}

type CreatePaymentInput struct {
	TeamID        string  `json:"teamId"`
	PlayerID      string  `json:"playerId"`
	Month         string  `json:"month"`
	Year          int     `json:"year"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	Notes         string  `json:"notes"`
}

type UpdatePaymentInput struct {
	Month         *string  `json:"month"`
	Year          *int     `json:"year"`
	Amount        *float64 `json:"amount"`
	Status        *string  `json:"status"`
	PaymentMethod *string  `json:"paymentMethod"`
	Notes         *string  `json:"notes"`
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	playerRepo  repositories.PlayerRepository
	bus         *live.Bus
	now         func() time.Time
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, playerRepo repositories.PlayerRepository, bus *live.Bus) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		playerRepo:  playerRepo,
		bus:         bus,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func validStatus(status string) bool {
	for _, s := range models.PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s *paymentService) validatePayment(v *ValidationError, payment *models.Payment) {
	if payment.PlayerID == "" {
		v.add("playerId", "Player is required")
	}
	if payment.Month == "" {
		v.add("month", "Month is required")
	} else if !models.ValidMonth(payment.Month) {
		v.add("month", "Unknown month")
	}
	if payment.Year < models.MinYear || payment.Year > models.MaxYear {
		v.add("year", fmt.Sprintf("Year must be between %d and %d", models.MinYear, models.MaxYear))
	}
	if payment.Amount <= 0 {
		v.add("amount", "Amount must be greater than zero")
	}
	if !validStatus(payment.Status) {
		v.add("status", "Unknown payment status")
	}
	if payment.PaymentMethod != "" && !models.ValidPaymentMethod(payment.PaymentMethod) {
		v.add("paymentMethod", "Unknown payment method")
	}
}

// stampPaidAt sets PaidAt the first time the payment reaches a collected
// status and clears it when it leaves one. An already set timestamp is kept.
func (s *paymentService) stampPaidAt(payment *models.Payment) {
	if models.CollectedStatuses[payment.Status] {
		if payment.PaidAt == nil {
			now := s.now()
			payment.PaidAt = &now
		}
	} else {
		payment.PaidAt = nil
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, ownerID string, input CreatePaymentInput) (*models.Payment, bool, error) {
	payment := &models.Payment{
		OwnerID:       ownerID,
		TeamID:        input.TeamID,
		PlayerID:      input.PlayerID,
		Month:         input.Month,
		Year:          input.Year,
		Amount:        input.Amount,
		Status:        input.Status,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPaid
	}

	v := newValidationError()
	s.validatePayment(v, payment)
	if err := v.orNil(); err != nil {
		return nil, false, err
	}

	player, err := s.playerRepo.GetByID(ctx, ownerID, payment.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, false, ErrPlayerNotFound
		}
		return nil, false, err
	}
	if payment.TeamID == "" {
		payment.TeamID = player.TeamID
	}

	duplicate, err := s.paymentRepo.ExistsForPeriod(ctx, ownerID, payment.PlayerID, payment.Month, payment.Year)
	if err != nil {
		return nil, false, err
	}

	s.stampPaidAt(payment)

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, false, fmt.Errorf("failed to create payment: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPayments})
	return payment, duplicate, nil
}

func (s *paymentService) GetPayment(ctx context.Context, ownerID, paymentID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, ownerID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error) {
	return s.paymentRepo.ListByOwner(ctx, ownerID)
}

func (s *paymentService) ListTeamPayments(ctx context.Context, ownerID, teamID string) ([]models.Payment, error) {
	return s.paymentRepo.ListByTeam(ctx, ownerID, teamID)
}

func (s *paymentService) ListPlayerPayments(ctx context.Context, ownerID, playerID string) ([]models.Payment, error) {
	return s.paymentRepo.ListByPlayer(ctx, ownerID, playerID)
}

func (s *paymentService) UpdatePayment(ctx context.Context, ownerID, paymentID string, input UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, ownerID, paymentID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if input.Month != nil {
		payment.Month = *input.Month
	}
	if input.Year != nil {
		payment.Year = *input.Year
	}
	if input.Amount != nil {
		payment.Amount = *input.Amount
	}
	if input.Status != nil {
		payment.Status = *input.Status
	}
	if input.PaymentMethod != nil {
		payment.PaymentMethod = *input.PaymentMethod
	}
	if input.Notes != nil {
		payment.Notes = *input.Notes
	}

	v := newValidationError()
	s.validatePayment(v, payment)
	if err := v.orNil(); err != nil {
		return nil, err
	}

	s.stampPaidAt(payment)

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPayments})
	return payment, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, ownerID, paymentID string) error {
	if err := s.paymentRepo.Delete(ctx, ownerID, paymentID); err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPayments})
	return nil
}

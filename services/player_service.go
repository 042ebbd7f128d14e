package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
)

var phoneRegex = regexp.MustCompile(`^[\d\s\-+()]{7,20}$`)

type PlayerService interface {
	CreatePlayer(ctx context.Context, ownerID string, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, ownerID, playerID string) (*models.Player, error)
	ListPlayers(ctx context.Context, ownerID string) ([]models.Player, error)
	ListTeamPlayers(ctx context.Context, ownerID, teamID string) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, ownerID, playerID string, input UpdatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, ownerID, playerID string) error
}

type CreatePlayerInput struct {
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"isActive"`
}

type UpdatePlayerInput struct {
	TeamID   *string `json:"teamId"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Notes    *string `json:"notes"`
	IsActive *bool   `json:"isActive"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	bus        *live.Bus
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, bus *live.Bus) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		bus:        bus,
	}
}

func validatePlayerFields(v *ValidationError, name, email, phone string) {
	name = strings.TrimSpace(name)
	if name == "" {
		v.add("name", "Player name is required")
	} else if len(name) < 2 {
		v.add("name", "Player name must be at least 2 characters")
	}
	if email != "" && !emailRegexp.MatchString(email) {
		v.add("email", "Invalid email address")
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		v.add("phone", "Invalid phone number")
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, ownerID string, input CreatePlayerInput) (*models.Player, error) {
	v := newValidationError()
	validatePlayerFields(v, input.Name, input.Email, input.Phone)
	if input.TeamID == "" {
		v.add("teamId", "Team is required")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, ownerID, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	player := &models.Player{
		OwnerID:  ownerID,
		TeamID:   input.TeamID,
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		Notes:    strings.TrimSpace(input.Notes),
		IsActive: isActive,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPlayers})
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, ownerID, playerID string) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, ownerID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, ownerID string) ([]models.Player, error) {
	return s.playerRepo.ListByOwner(ctx, ownerID)
}

// ListTeamPlayers returns players bound to the given team id even when the
// team row itself no longer exists, so rosters of deleted teams stay visible.
func (s *playerService) ListTeamPlayers(ctx context.Context, ownerID, teamID string) ([]models.Player, error) {
	return s.playerRepo.ListByTeam(ctx, ownerID, teamID)
}

func (s *playerService) UpdatePlayer(ctx context.Context, ownerID, playerID string, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, ownerID, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.TeamID != nil {
		player.TeamID = *input.TeamID
	}
	if input.Name != nil {
		player.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		player.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		player.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Notes != nil {
		player.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.IsActive != nil {
		player.IsActive = *input.IsActive
	}

	v := newValidationError()
	validatePlayerFields(v, player.Name, player.Email, player.Phone)
	if player.TeamID == "" {
		v.add("teamId", "Team is required")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPlayers})
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, ownerID, playerID string) error {
	if err := s.playerRepo.Delete(ctx, ownerID, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionPlayers})
	return nil
}

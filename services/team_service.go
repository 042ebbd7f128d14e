package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Sabbir999/Team-budget/live"
	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
	"github.com/Sabbir999/Team-budget/sports"
	"github.com/Sabbir999/Team-budget/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, ownerID string, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, ownerID, teamID string) (*models.Team, error)
	ListTeams(ctx context.Context, ownerID string) ([]models.Team, error)
	UpdateTeam(ctx context.Context, ownerID, teamID string, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, ownerID, teamID string) error
	UploadLogo(ctx context.Context, ownerID, teamID, contentType string, file io.Reader) (*models.Team, error)
}

type CreateTeamInput struct {
	Name           string `json:"name"`
	SportType      string `json:"sportType"`
	Currency       string `json:"currency"`
	Location       string `json:"location"`
	Schedule       string `json:"schedule"`
	PaymentMethod  string `json:"paymentMethod"`
	PaymentDetails string `json:"paymentDetails"`
}

type UpdateTeamInput struct {
	Name           *string `json:"name"`
	SportType      *string `json:"sportType"`
	Currency       *string `json:"currency"`
	Location       *string `json:"location"`
	Schedule       *string `json:"schedule"`
	PaymentMethod  *string `json:"paymentMethod"`
	PaymentDetails *string `json:"paymentDetails"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	bus      *live.Bus
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, bus *live.Bus) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		bus:      bus,
	}
}

func validateTeamFields(v *ValidationError, name, sportType, currency string) {
	name = strings.TrimSpace(name)
	if name == "" {
		v.add("name", "Team name is required")
	} else if len(name) < 2 {
		v.add("name", "Team name must be at least 2 characters")
	}
	if sportType == "" {
		v.add("sportType", "Sport type is required")
	} else if !sports.Known(sportType) {
		v.add("sportType", "Unknown sport type")
	}
	if currency == "" {
		v.add("currency", "Currency is required")
	} else if !models.ValidCurrency(currency) {
		v.add("currency", "Unknown currency code")
	}
}

func (s *teamService) CreateTeam(ctx context.Context, ownerID string, input CreateTeamInput) (*models.Team, error) {
	v := newValidationError()
	validateTeamFields(v, input.Name, input.SportType, input.Currency)
	if input.PaymentMethod != "" && !models.ValidPaymentMethod(input.PaymentMethod) {
		v.add("paymentMethod", "Unknown payment method")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	team := &models.Team{
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(input.Name),
		SportType:      input.SportType,
		Currency:       input.Currency,
		Location:       strings.TrimSpace(input.Location),
		Schedule:       strings.TrimSpace(input.Schedule),
		PaymentMethod:  input.PaymentMethod,
		PaymentDetails: strings.TrimSpace(input.PaymentDetails),
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionTeams})
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, ownerID, teamID string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, ownerID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, ownerID string) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, ownerID, teamID string, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, ownerID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.SportType != nil {
		team.SportType = *input.SportType
	}
	if input.Currency != nil {
		team.Currency = *input.Currency
	}
	if input.Location != nil {
		team.Location = strings.TrimSpace(*input.Location)
	}
	if input.Schedule != nil {
		team.Schedule = strings.TrimSpace(*input.Schedule)
	}
	if input.PaymentMethod != nil {
		team.PaymentMethod = *input.PaymentMethod
	}
	if input.PaymentDetails != nil {
		team.PaymentDetails = strings.TrimSpace(*input.PaymentDetails)
	}

	v := newValidationError()
	validateTeamFields(v, team.Name, team.SportType, team.Currency)
	if team.PaymentMethod != "" && !models.ValidPaymentMethod(team.PaymentMethod) {
		v.add("paymentMethod", "Unknown payment method")
	}
	if err := v.orNil(); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionTeams})
	s.populateLogoURL(team)
	return team, nil
}

// DeleteTeam removes the team row only. Dependent players, expenses and
// payments are intentionally left in place, still carrying the old teamId.
func (s *teamService) DeleteTeam(ctx context.Context, ownerID, teamID string) error {
	team, err := s.teamRepo.GetByID(ctx, ownerID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(ctx, ownerID, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if team.LogoKey != nil && *team.LogoKey != "" && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			// The row is gone; a stale object in the bucket is tolerable.
			slog.Warn("failed to delete team logo", "key", *team.LogoKey, "error", delErr)
		}
	}

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionTeams})
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, ownerID, teamID, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	team, err := s.teamRepo.GetByID(ctx, ownerID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("users/%s/teams/%s/logo", ownerID, teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, ownerID, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store team logo key: %w", err)
	}
	team.LogoKey = &result.Key

	s.bus.Publish(live.Event{OwnerID: ownerID, Collection: live.CollectionTeams})
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sabbir999/Team-budget/models"
	"github.com/Sabbir999/Team-budget/repositories"
)

type PreferenceService interface {
	GetPreference(ctx context.Context, ownerID string) (*models.Preference, error)
	UpdatePreference(ctx context.Context, ownerID string, input UpdatePreferenceInput) (*models.Preference, error)
}

type UpdatePreferenceInput struct {
	CurrentTeamID *string `json:"currentTeamId"`
	CurrentSport  *string `json:"currentSport"`
}

type preferenceService struct {
	prefRepo repositories.PreferenceRepository
}

func NewPreferenceService(prefRepo repositories.PreferenceRepository) PreferenceService {
	return &preferenceService{prefRepo: prefRepo}
}

// GetPreference never fails on a missing row; a user who has never selected
// anything simply gets empty hints back.
func (s *preferenceService) GetPreference(ctx context.Context, ownerID string) (*models.Preference, error) {
	pref, err := s.prefRepo.Get(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPreferenceNotFound) {
			return &models.Preference{OwnerID: ownerID}, nil
		}
		return nil, err
	}
	return pref, nil
}

func (s *preferenceService) UpdatePreference(ctx context.Context, ownerID string, input UpdatePreferenceInput) (*models.Preference, error) {
	pref, err := s.GetPreference(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.CurrentTeamID != nil {
		pref.CurrentTeamID = *input.CurrentTeamID
	}
	if input.CurrentSport != nil {
		pref.CurrentSport = *input.CurrentSport
	}

	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("failed to save preference: %w", err)
	}
	return pref, nil
}

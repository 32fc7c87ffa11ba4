package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"journal-service/internal/domain/entity"
	"journal-service/internal/domain/repository"
	domainservice "journal-service/internal/domain/service"

	"github.com/google/uuid"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) domainservice.ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &entity.Profile{ID: userID}, nil
		}
		return nil, err
	}

	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, fullName, avatarURL *string) (*entity.Profile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != nil {
		profile.Username = username
	}
	if fullName != nil {
		profile.FullName = fullName
	}
	if avatarURL != nil {
		profile.AvatarURL = avatarURL
	}
	profile.UpdatedAt = time.Now().UTC()

	stored, err := s.profileRepo.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return stored, nil
}

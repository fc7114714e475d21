package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
	"members-lounge-backend/internal/storage"
)

type ProfileUpdate struct {
	DisplayName string   `json:"display_name" validate:"required,max=80"`
	AvatarURL   string   `json:"avatar_url" validate:"omitempty,url"`
	Occupation  string   `json:"occupation" validate:"max=120"`
	Bio         string   `json:"bio" validate:"max=1000"`
	Interests   []string `json:"interests" validate:"max=10,dive,required,max=40"`
}

type profileService struct {
	profileRepo repository.ProfileRepository
	media       storage.Store
}

// NewProfileService builds the profile service. media may be nil when
// avatar uploads are disabled.
func NewProfileService(profileRepo repository.ProfileRepository, media storage.Store) ProfileService {
	return &profileService{profileRepo: profileRepo, media: media}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Remote("profileRepo.GetByID", err)
	}
	return p, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error) {
	update.DisplayName = strings.TrimSpace(update.DisplayName)
	update.AvatarURL = strings.TrimSpace(update.AvatarURL)
	update.Occupation = strings.TrimSpace(update.Occupation)
	update.Bio = strings.TrimSpace(update.Bio)
	interests := make([]string, 0, len(update.Interests))
	for _, i := range update.Interests {
		interests = append(interests, strings.TrimSpace(i))
	}
	update.Interests = interests

	if err := validateStruct(update); err != nil {
		return nil, err
	}

	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Remote("profileRepo.GetByID", err)
	}
	if update.AvatarURL != p.AvatarURL && s.issuedByStore(update.AvatarURL) {
		return nil, domain.Validationf("avatar_url cannot point at uploaded media; use the avatar upload instead")
	}
	p.DisplayName = update.DisplayName
	p.AvatarURL = update.AvatarURL
	p.Occupation = update.Occupation
	p.Bio = update.Bio
	p.Interests = update.Interests
	if err := s.profileRepo.Update(ctx, p); err != nil {
		return nil, domain.Remote("profileRepo.Update", err)
	}
	return p, nil
}

// issuedByStore reports whether url names a file in the media store. Such
// URLs are only ever set by the avatar upload.
func (s *profileService) issuedByStore(url string) bool {
	if s.media == nil || url == "" {
		return false
	}
	_, ok := s.media.KeyFromURL(url)
	return ok
}

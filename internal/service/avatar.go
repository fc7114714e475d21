package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
	"members-lounge-backend/internal/storage"
)

const DefaultMaxAvatarBytes = 5 << 20

// sniffBytes is how much of an upload is inspected to confirm its type.
const sniffBytes = 3072

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type avatarService struct {
	profileRepo repository.ProfileRepository
	store       storage.Store
	maxBytes    int64
}

func NewAvatarService(profileRepo repository.ProfileRepository, store storage.Store, maxBytes int64) AvatarService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAvatarBytes
	}
	return &avatarService{
		profileRepo: profileRepo,
		store:       store,
		maxBytes:    maxBytes,
	}
}

func (s *avatarService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*domain.Profile, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, domain.Validationf("avatar must be a JPEG, PNG or WebP image")
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, domain.Validationf("failed to read avatar: %v", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, domain.Validationf("avatar is empty")
	}
	if detected := mimetype.Detect(head); !detected.Is(contentType) {
		return nil, domain.Validationf("avatar content is %s, not %s", detected.String(), contentType)
	}

	p, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.Remote("profileRepo.GetByID", err)
	}

	key := avatarPrefix(userID) + uuid.NewString() + ext
	full := io.MultiReader(bytes.NewReader(head), body)
	size, err := s.store.Save(ctx, key, io.LimitReader(full, s.maxBytes+1))
	if err != nil {
		return nil, domain.Remote("store.Save", err)
	}
	if size > s.maxBytes {
		s.discard(ctx, key)
		return nil, domain.Validationf("avatar exceeds %d bytes", s.maxBytes)
	}

	previous := p.AvatarURL
	p.AvatarURL = s.store.URL(key)
	if err := s.profileRepo.Update(ctx, p); err != nil {
		s.discard(ctx, key)
		return nil, domain.Remote("profileRepo.Update", err)
	}

	if oldKey, ok := s.store.KeyFromURL(previous); ok && strings.HasPrefix(oldKey, avatarPrefix(userID)) {
		s.discard(ctx, oldKey)
	}
	return p, nil
}

// avatarPrefix is the key prefix owning every avatar file of userID.
func avatarPrefix(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s/", userID)
}

func (s *avatarService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Warn("Failed to delete avatar file", "key", key, "error", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
	"members-lounge-backend/internal/security"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
)

// dummyPasswordHash is compared against when the email is unknown so both
// rejection paths cost one bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("members-lounge-unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("generate dummy password hash: %v", err))
	}
	return h
})

type authService struct {
	profileRepo  repository.ProfileRepository
	tokenManager security.TokenManager
}

func NewAuthService(profileRepo repository.ProfileRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		profileRepo:  profileRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", "", domain.Validationf("email and password are required")
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
		return nil, "", "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", "", domain.Remote("profileRepo.GetByEmail", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		logger.WarnContext(ctx, "Login rejected", "userID", profile.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokens(profile)
	if err != nil {
		return nil, "", "", err
	}
	return profile, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refresh)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		return "", "", ErrInvalidToken
	}

	profile, err := s.profileRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return "", "", ErrInvalidToken
	}
	if err != nil {
		return "", "", domain.Remote("profileRepo.GetByID", err)
	}
	return s.generateTokens(profile)
}

func (s *authService) generateTokens(profile *domain.Profile) (string, string, error) {
	access, err := s.tokenManager.GenerateAccessToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(profile.ID, profile.Email)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

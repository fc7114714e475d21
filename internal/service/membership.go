package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"members-lounge-backend/internal/cache"
	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
)

type membershipService struct {
	repo    repository.MembershipRepository
	cache   cache.MembershipCache
	billing BillingClient
}

func NewMembershipService(repo repository.MembershipRepository, membershipCache cache.MembershipCache, billing BillingClient) MembershipService {
	return &membershipService{
		repo:    repo,
		cache:   membershipCache,
		billing: billing,
	}
}

func (s *membershipService) GetMembership(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	if m, ok := s.cache.Get(ctx, userID); ok {
		return m, nil
	}
	m, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, m)
	return m, nil
}

func (s *membershipService) ViewerTier(ctx context.Context, userID uuid.UUID) (domain.Tier, error) {
	if userID == uuid.Nil {
		return domain.TierGuest, nil
	}
	m, err := s.GetMembership(ctx, userID)
	if err != nil {
		return "", err
	}
	return m.Tier(), nil
}

func (s *membershipService) CancelSubscription(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	logger.EnterMethod("membershipService.CancelSubscription", "userID", userID)

	m, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m.Tier() != domain.TierPaid || m.SubscriptionID == "" {
		return nil, fmt.Errorf("%w: no active paid subscription", domain.ErrInvalidState)
	}

	logger.ExternalServiceCall("billing", "CancelSubscription", "userID", userID)
	err = s.billing.CancelSubscription(ctx, m.SubscriptionID)
	logger.ExternalServiceResult("billing", "CancelSubscription", err, "userID", userID)
	if err != nil {
		return nil, domain.Remote("billing.CancelSubscription", err)
	}

	if err := s.repo.UpdateStatus(ctx, userID, domain.MembershipStatusCancelled); err != nil {
		return nil, domain.Remote("membershipRepo.UpdateStatus", err)
	}
	s.cache.Invalidate(ctx, userID)

	m.Status = domain.MembershipStatusCancelled
	logger.ExitMethod("membershipService.CancelSubscription", "userID", userID)
	return m, nil
}

// load reads the membership row; members without one are on the free plan.
func (s *membershipService) load(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	m, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FreeMembership(userID), nil
	}
	if err != nil {
		return nil, domain.Remote("membershipRepo.GetByUserID", err)
	}
	return m, nil
}

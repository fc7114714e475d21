package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
)

// MembershipCache holds recently read memberships. Misses and failures are
// indistinguishable to callers, who then fall back to the database.
type MembershipCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Membership, bool)
	Set(ctx context.Context, m *domain.Membership)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

const keyPrefix = "membership:"

type redisMembershipCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisMembershipCache(client redis.UniversalClient, ttl time.Duration) MembershipCache {
	return &redisMembershipCache{client: client, ttl: ttl}
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func (c *redisMembershipCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Membership, bool) {
	data, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("Membership cache read failed", "userID", userID, "error", err)
		}
		return nil, false
	}
	var entry cachedMembership
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("Membership cache entry corrupt", "userID", userID, "error", err)
		return nil, false
	}
	return entry.toDomain(), true
}

func (c *redisMembershipCache) Set(ctx context.Context, m *domain.Membership) {
	data, err := json.Marshal(fromDomain(m))
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(m.UserID), data, c.ttl).Err(); err != nil {
		logger.Warn("Membership cache write failed", "userID", m.UserID, "error", err)
	}
}

func (c *redisMembershipCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		logger.Warn("Membership cache invalidate failed", "userID", userID, "error", err)
	}
}

// cachedMembership keeps the subscription id, which domain.Membership hides from JSON.
type cachedMembership struct {
	UserID           uuid.UUID               `json:"user_id"`
	Plan             domain.MembershipPlan   `json:"plan"`
	Rank             domain.MembershipRank   `json:"rank"`
	Status           domain.MembershipStatus `json:"status"`
	SubscriptionID   string                  `json:"subscription_id"`
	CurrentPeriodEnd *time.Time              `json:"current_period_end"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func fromDomain(m *domain.Membership) cachedMembership {
	return cachedMembership{
		UserID:           m.UserID,
		Plan:             m.Plan,
		Rank:             m.Rank,
		Status:           m.Status,
		SubscriptionID:   m.SubscriptionID,
		CurrentPeriodEnd: m.CurrentPeriodEnd,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (c cachedMembership) toDomain() *domain.Membership {
	return &domain.Membership{
		UserID:           c.UserID,
		Plan:             c.Plan,
		Rank:             c.Rank,
		Status:           c.Status,
		SubscriptionID:   c.SubscriptionID,
		CurrentPeriodEnd: c.CurrentPeriodEnd,
		UpdatedAt:        c.UpdatedAt,
	}
}

type noopMembershipCache struct{}

// NewNoopMembershipCache is used when no Redis address is configured.
func NewNoopMembershipCache() MembershipCache {
	return noopMembershipCache{}
}

func (noopMembershipCache) Get(context.Context, uuid.UUID) (*domain.Membership, bool) { return nil, false }
func (noopMembershipCache) Set(context.Context, *domain.Membership)                   {}
func (noopMembershipCache) Invalidate(context.Context, uuid.UUID)                     {}

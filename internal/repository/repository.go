package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type MembershipRepository interface {
	// GetByUserID returns domain.ErrNotFound when the member has no membership row.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Membership, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.MembershipStatus) error
}

// ResolveParams describes a guarded transition out of pending. The update
// only applies while the row is still pending and ActorID is the requester
// (ActorIsFrom) or the recipient.
type ResolveParams struct {
	ID           uuid.UUID
	ActorID      uuid.UUID
	ActorIsFrom  bool
	Status       domain.MatchingRequestStatus
	SelectedDate *domain.ProposedDate
}

type MatchingRequestRepository interface {
	Create(ctx context.Context, req *domain.MatchingRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchingRequest, error)
	ListSent(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error)
	ListReceived(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error)
	// Resolve returns (nil, nil) when the guard did not match.
	Resolve(ctx context.Context, params ResolveParams) (*domain.MatchingRequest, error)
	ExpireStale(ctx context.Context, today string, createdBefore time.Time) ([]domain.MatchingRequest, error)
}

type VisitPlanRepository interface {
	Create(ctx context.Context, plan *domain.VisitPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error)
	Update(ctx context.Context, plan *domain.VisitPlan) error
	Cancel(ctx context.Context, id, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlan, error)
	// ListVisible returns non-cancelled plans in range whose visibility is in
	// the given set, joined with the owner profile.
	ListVisible(ctx context.Context, r domain.DateRange, visibilities []domain.Visibility) ([]domain.VisitPlan, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error
}

package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) // profile, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.Profile, error)
}

// AvatarService stores a profile picture and points the profile at it,
// replacing any avatar it stored before.
type AvatarService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*domain.Profile, error)
}

type MembershipService interface {
	GetMembership(ctx context.Context, userID uuid.UUID) (*domain.Membership, error)
	// ViewerTier resolves uuid.Nil to the guest tier.
	ViewerTier(ctx context.Context, userID uuid.UUID) (domain.Tier, error)
	CancelSubscription(ctx context.Context, userID uuid.UUID) (*domain.Membership, error)
}

type MatchingService interface {
	CreateRequest(ctx context.Context, in CreateMatchingRequestInput) (*domain.MatchingRequest, error)
	GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error)
	AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID, selected domain.ProposedDate) (*domain.MatchingRequest, error)
	RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error)
	CancelRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error)
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

type VisitPlanService interface {
	CreatePlan(ctx context.Context, ownerID uuid.UUID, in VisitPlanInput) (*domain.VisitPlan, error)
	UpdatePlan(ctx context.Context, ownerID, planID uuid.UUID, in VisitPlanInput) (*domain.VisitPlan, error)
	CancelPlan(ctx context.Context, ownerID, planID uuid.UUID) error
	GetPlan(ctx context.Context, ownerID, planID uuid.UUID) (*domain.VisitPlan, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlan, error)
	// Query lists other members' plans visible to viewerID (uuid.Nil for guests).
	Query(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlanEntry, error)
	Calendar(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.CalendarDay, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
}

// Notifier fans matching events out to every delivery channel. Delivery is
// best effort and never fails the caller.
type Notifier interface {
	MatchingRequestCreated(ctx context.Context, req *domain.MatchingRequest)
	MatchingRequestResolved(ctx context.Context, req *domain.MatchingRequest)
}

type EmailService interface {
	Send(ctx context.Context, toEmail, toName, subject, plainText string) error
}

type PushService interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type BillingClient interface {
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

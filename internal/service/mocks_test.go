package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipRepo) UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.MembershipStatus) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

// MockMatchingRepo
type MockMatchingRepo struct {
	mock.Mock
}

func (m *MockMatchingRepo) Create(ctx context.Context, req *domain.MatchingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMatchingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingRepo) ListSent(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error) {
	args := m.Called(ctx, userID, opts)
	return args.Get(0).([]domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingRepo) ListReceived(ctx context.Context, userID uuid.UUID, opts domain.ListOptions) ([]domain.MatchingRequest, error) {
	args := m.Called(ctx, userID, opts)
	return args.Get(0).([]domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingRepo) Resolve(ctx context.Context, params repository.ResolveParams) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingRepo) ExpireStale(ctx context.Context, today string, createdBefore time.Time) ([]domain.MatchingRequest, error) {
	args := m.Called(ctx, today, createdBefore)
	return args.Get(0).([]domain.MatchingRequest), args.Error(1)
}

// MockVisitPlanRepo
type MockVisitPlanRepo struct {
	mock.Mock
}

func (m *MockVisitPlanRepo) Create(ctx context.Context, plan *domain.VisitPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockVisitPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanRepo) Update(ctx context.Context, plan *domain.VisitPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}
func (m *MockVisitPlanRepo) Cancel(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}
func (m *MockVisitPlanRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlan, error) {
	args := m.Called(ctx, ownerID, r)
	return args.Get(0).([]domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanRepo) ListVisible(ctx context.Context, r domain.DateRange, visibilities []domain.Visibility) ([]domain.VisitPlan, error) {
	args := m.Called(ctx, r, visibilities)
	return args.Get(0).([]domain.VisitPlan), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) MatchingRequestCreated(ctx context.Context, req *domain.MatchingRequest) {
	m.Called(ctx, req)
}
func (m *MockNotifier) MatchingRequestResolved(ctx context.Context, req *domain.MatchingRequest) {
	m.Called(ctx, req)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	args := m.Called(ctx, toEmail, toName, subject, plainText)
	return args.Error(0)
}

// MockPushService
type MockPushService struct {
	mock.Mock
}

func (m *MockPushService) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	args := m.Called(ctx, deviceToken, title, body, data)
	return args.Error(0)
}

// MockBillingClient
type MockBillingClient struct {
	mock.Mock
}

func (m *MockBillingClient) CancelSubscription(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// MockMembershipService
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) GetMembership(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockMembershipService) ViewerTier(ctx context.Context, userID uuid.UUID) (domain.Tier, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Tier), args.Error(1)
}
func (m *MockMembershipService) CancelSubscription(ctx context.Context, userID uuid.UUID) (*domain.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

// MockMembershipCache
type MockMembershipCache struct {
	mock.Mock
}

func (m *MockMembershipCache) Get(ctx context.Context, userID uuid.UUID) (*domain.Membership, bool) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Membership), args.Bool(1)
}
func (m *MockMembershipCache) Set(ctx context.Context, ms *domain.Membership) {
	m.Called(ctx, ms)
}
func (m *MockMembershipCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	m.Called(ctx, userID)
}

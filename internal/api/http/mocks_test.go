package http_test

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Profile, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.Profile), args.String(1), args.String(2), args.Error(3)
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}

type MockMatchingService struct {
	mock.Mock
}

func (m *MockMatchingService) CreateRequest(ctx context.Context, in service.CreateMatchingRequestInput) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) ListSent(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID, selected domain.ProposedDate) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, actorID, requestID, selected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) CancelRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	args := m.Called(ctx, actorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatchingRequest), args.Error(1)
}
func (m *MockMatchingService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockVisitPlanService struct {
	mock.Mock
}

func (m *MockVisitPlanService) CreatePlan(ctx context.Context, ownerID uuid.UUID, in service.VisitPlanInput) (*domain.VisitPlan, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanService) UpdatePlan(ctx context.Context, ownerID, planID uuid.UUID, in service.VisitPlanInput) (*domain.VisitPlan, error) {
	args := m.Called(ctx, ownerID, planID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanService) CancelPlan(ctx context.Context, ownerID, planID uuid.UUID) error {
	args := m.Called(ctx, ownerID, planID)
	return args.Error(0)
}
func (m *MockVisitPlanService) GetPlan(ctx context.Context, ownerID, planID uuid.UUID) (*domain.VisitPlan, error) {
	args := m.Called(ctx, ownerID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanService) ListMine(ctx context.Context, ownerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlan, error) {
	args := m.Called(ctx, ownerID, r)
	return args.Get(0).([]domain.VisitPlan), args.Error(1)
}
func (m *MockVisitPlanService) Query(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlanEntry, error) {
	args := m.Called(ctx, viewerID, r)
	return args.Get(0).([]domain.VisitPlanEntry), args.Error(1)
}
func (m *MockVisitPlanService) Calendar(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.CalendarDay, error) {
	args := m.Called(ctx, viewerID, r)
	return args.Get(0).([]domain.CalendarDay), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

type MockAvatarService struct {
	mock.Mock
}

func (m *MockAvatarService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (*domain.Profile, error) {
	args := m.Called(ctx, userID, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/service"
)

func TestNotifier_MatchingRequestCreated(t *testing.T) {
	ctx := context.Background()
	from := &domain.Profile{ID: uuid.New(), DisplayName: "Alice"}
	to := &domain.Profile{ID: uuid.New(), DisplayName: "Bob", Email: "bob@example.com", PushToken: "device-1"}
	req := &domain.MatchingRequest{ID: uuid.New(), FromUserID: from.ID, ToUserID: to.ID, Status: domain.MatchingRequestStatusPending}

	notes, profiles := new(MockNotificationRepo), new(MockProfileRepo)
	email, push := new(MockEmailService), new(MockPushService)
	n := service.NewNotifier(notes, profiles, email, push, "https://lounge.example.com/")

	profiles.On("GetByID", ctx, from.ID).Return(from, nil).Once()
	profiles.On("GetByID", ctx, to.ID).Return(to, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(note *domain.Notification) bool {
		return note.UserID == to.ID && strings.Contains(note.Message, "Alice") &&
			note.Attributes["request_id"] == req.ID.String()
	})).Return(nil).Once()
	email.On("Send", ctx, "bob@example.com", "Bob", "New matching request", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "https://lounge.example.com/matching-requests/"+req.ID.String())
	})).Return(nil).Once()
	push.On("Send", ctx, "device-1", "New matching request", mock.Anything, mock.Anything).Return(nil).Once()

	n.MatchingRequestCreated(ctx, req)

	notes.AssertExpectations(t)
	email.AssertExpectations(t)
	push.AssertExpectations(t)
}

func TestNotifier_ResolvedNotifiesRequester(t *testing.T) {
	ctx := context.Background()
	from := &domain.Profile{ID: uuid.New(), DisplayName: "Alice", Email: "alice@example.com"}
	to := &domain.Profile{ID: uuid.New(), DisplayName: "Bob"}
	selected := domain.ProposedDate{Date: "2025-02-03", Time: "20:00"}
	req := &domain.MatchingRequest{
		ID: uuid.New(), FromUserID: from.ID, ToUserID: to.ID,
		Status: domain.MatchingRequestStatusAccepted, SelectedDate: &selected,
	}

	notes, profiles := new(MockNotificationRepo), new(MockProfileRepo)
	email, push := new(MockEmailService), new(MockPushService)
	n := service.NewNotifier(notes, profiles, email, push, "")

	profiles.On("GetByID", ctx, to.ID).Return(to, nil).Once()
	profiles.On("GetByID", ctx, from.ID).Return(from, nil).Once()
	notes.On("Create", ctx, mock.MatchedBy(func(note *domain.Notification) bool {
		return note.UserID == from.ID && strings.Contains(note.Message, "2025-02-03 20:00")
	})).Return(errors.New("db down")).Once()
	email.On("Send", ctx, "alice@example.com", "Alice", "Matching request accepted", mock.Anything).
		Return(errors.New("sendgrid error: status 500")).Once()

	// Failures on every channel are swallowed.
	assert.NotPanics(t, func() { n.MatchingRequestResolved(ctx, req) })

	email.AssertExpectations(t)
	push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

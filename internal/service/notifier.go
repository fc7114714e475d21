package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
)

type notifier struct {
	noteRepo    repository.NotificationRepository
	profileRepo repository.ProfileRepository
	emailSvc    EmailService
	pushSvc     PushService
	siteURL     string
}

func NewNotifier(
	noteRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	emailSvc EmailService,
	pushSvc PushService,
	siteURL string,
) Notifier {
	return &notifier{
		noteRepo:    noteRepo,
		profileRepo: profileRepo,
		emailSvc:    emailSvc,
		pushSvc:     pushSvc,
		siteURL:     strings.TrimRight(siteURL, "/"),
	}
}

type matchingEvent struct {
	recipientID uuid.UUID
	actorID     uuid.UUID
	title       string
	body        func(actorName string) string
}

func (n *notifier) MatchingRequestCreated(ctx context.Context, req *domain.MatchingRequest) {
	n.deliver(ctx, req, matchingEvent{
		recipientID: req.ToUserID,
		actorID:     req.FromUserID,
		title:       "New matching request",
		body: func(actor string) string {
			return fmt.Sprintf("%s would like to meet you at the lounge.", actor)
		},
	})
}

func (n *notifier) MatchingRequestResolved(ctx context.Context, req *domain.MatchingRequest) {
	var ev matchingEvent
	switch req.Status {
	case domain.MatchingRequestStatusAccepted:
		ev = matchingEvent{
			recipientID: req.FromUserID,
			actorID:     req.ToUserID,
			title:       "Matching request accepted",
			body: func(actor string) string {
				when := ""
				if req.SelectedDate != nil {
					when = " for " + strings.TrimSpace(req.SelectedDate.Date+" "+req.SelectedDate.Time)
				}
				return fmt.Sprintf("%s accepted your request%s.", actor, when)
			},
		}
	case domain.MatchingRequestStatusRejected:
		ev = matchingEvent{
			recipientID: req.FromUserID,
			actorID:     req.ToUserID,
			title:       "Matching request declined",
			body: func(actor string) string {
				return fmt.Sprintf("%s declined your request.", actor)
			},
		}
	case domain.MatchingRequestStatusExpired:
		ev = matchingEvent{
			recipientID: req.FromUserID,
			actorID:     req.ToUserID,
			title:       "Matching request expired",
			body: func(actor string) string {
				return fmt.Sprintf("Your request to %s expired without a response.", actor)
			},
		}
	case domain.MatchingRequestStatusCancelled:
		ev = matchingEvent{
			recipientID: req.ToUserID,
			actorID:     req.FromUserID,
			title:       "Matching request withdrawn",
			body: func(actor string) string {
				return fmt.Sprintf("%s withdrew their request.", actor)
			},
		}
	default:
		return
	}
	n.deliver(ctx, req, ev)
}

// deliver writes the in-app notification, then tries email and push. Every
// failure is logged and swallowed.
func (n *notifier) deliver(ctx context.Context, req *domain.MatchingRequest, ev matchingEvent) {
	actorName := "A member"
	if actor, err := n.profileRepo.GetByID(ctx, ev.actorID); err == nil && actor.DisplayName != "" {
		actorName = actor.DisplayName
	}
	body := ev.body(actorName)
	attrs := map[string]string{
		"type":       "matching_request",
		"request_id": req.ID.String(),
		"status":     string(req.Status),
	}

	note := &domain.Notification{
		UserID:     ev.recipientID,
		Title:      ev.title,
		Message:    body,
		Attributes: attrs,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.ErrorContext(ctx, "Failed to store notification", "userID", ev.recipientID, "requestID", req.ID, "error", err)
	}

	recipient, err := n.profileRepo.GetByID(ctx, ev.recipientID)
	if err != nil {
		logger.WarnContext(ctx, "Notification recipient lookup failed", "userID", ev.recipientID, "error", err)
		return
	}

	if recipient.Email != "" {
		text := body
		if n.siteURL != "" {
			text += fmt.Sprintf("\n\nView it at %s/matching-requests/%s", n.siteURL, req.ID)
		}
		if err := n.emailSvc.Send(ctx, recipient.Email, recipient.DisplayName, ev.title, text); err != nil {
			logger.WarnContext(ctx, "Failed to email notification", "userID", recipient.ID, "requestID", req.ID, "error", err)
		}
	}

	if recipient.PushToken != "" {
		if err := n.pushSvc.Send(ctx, recipient.PushToken, ev.title, body, attrs); err != nil {
			logger.WarnContext(ctx, "Failed to push notification", "userID", recipient.ID, "requestID", req.ID, "error", err)
		}
	}
}

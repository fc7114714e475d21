package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/repository"
)

type CreateMatchingRequestInput struct {
	FromUserID    uuid.UUID             `json:"-"`
	ToUserID      uuid.UUID             `json:"to_user_id"`
	ProposedDates []domain.ProposedDate `json:"proposed_dates" validate:"required,min=1,max=3,dive"`
	Introduction  string                `json:"introduction" validate:"required,max=2000"`
	Message       string                `json:"message" validate:"required,max=2000"`
	Topic         string                `json:"topic" validate:"max=200"`
}

type matchingService struct {
	requestRepo repository.MatchingRequestRepository
	profileRepo repository.ProfileRepository
	notifier    Notifier
	pendingTTL  time.Duration
}

func NewMatchingService(
	requestRepo repository.MatchingRequestRepository,
	profileRepo repository.ProfileRepository,
	notifier Notifier,
	pendingTTL time.Duration,
) MatchingService {
	return &matchingService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
		pendingTTL:  pendingTTL,
	}
}

func (s *matchingService) CreateRequest(ctx context.Context, in CreateMatchingRequestInput) (*domain.MatchingRequest, error) {
	in.Introduction = strings.TrimSpace(in.Introduction)
	in.Message = strings.TrimSpace(in.Message)
	in.Topic = strings.TrimSpace(in.Topic)

	if in.FromUserID == uuid.Nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.ToUserID == uuid.Nil {
		return nil, domain.Validationf("to_user_id is required")
	}
	if in.FromUserID == in.ToUserID {
		return nil, domain.Validationf("cannot send a matching request to yourself")
	}
	if len(in.ProposedDates) > domain.MaxProposedDates {
		return nil, domain.Validationf("at most %d proposed dates are allowed", domain.MaxProposedDates)
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	seen := make(map[domain.ProposedDate]bool, len(in.ProposedDates))
	for _, p := range in.ProposedDates {
		if seen[p] {
			return nil, domain.Validationf("proposed date %s %s is listed twice", p.Date, p.Time)
		}
		seen[p] = true
	}

	if _, err := s.profileRepo.GetByID(ctx, in.ToUserID); err != nil {
		return nil, domain.Remote("profileRepo.GetByID", err)
	}

	req := &domain.MatchingRequest{
		FromUserID:    in.FromUserID,
		ToUserID:      in.ToUserID,
		Status:        domain.MatchingRequestStatusPending,
		ProposedDates: append([]domain.ProposedDate(nil), in.ProposedDates...),
		Introduction:  in.Introduction,
		Message:       in.Message,
		Topic:         in.Topic,
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, domain.Remote("requestRepo.Create", err)
	}
	logger.InfoContext(ctx, "Matching request created", "requestID", req.ID, "from", req.FromUserID, "to", req.ToUserID)

	s.notifier.MatchingRequestCreated(ctx, req)
	return req, nil
}

func (s *matchingService) GetRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, domain.Remote("requestRepo.GetByID", err)
	}
	if !req.IsParty(actorID) {
		return nil, fmt.Errorf("%w: not a party to this request", domain.ErrAuthorization)
	}
	return req, nil
}

func (s *matchingService) ListSent(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error) {
	reqs, err := s.requestRepo.ListSent(ctx, userID, domain.ListOptions{WithCounterpart: true})
	if err != nil {
		return nil, domain.Remote("requestRepo.ListSent", err)
	}
	return reqs, nil
}

func (s *matchingService) ListReceived(ctx context.Context, userID uuid.UUID) ([]domain.MatchingRequest, error) {
	reqs, err := s.requestRepo.ListReceived(ctx, userID, domain.ListOptions{WithCounterpart: true})
	if err != nil {
		return nil, domain.Remote("requestRepo.ListReceived", err)
	}
	return reqs, nil
}

func (s *matchingService) AcceptRequest(ctx context.Context, actorID, requestID uuid.UUID, selected domain.ProposedDate) (*domain.MatchingRequest, error) {
	req, err := s.pendingFor(ctx, requestID, actorID, false)
	if err != nil {
		return nil, err
	}
	chosen, err := req.FindProposed(selected)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, repository.ResolveParams{
		ID:           requestID,
		ActorID:      actorID,
		Status:       domain.MatchingRequestStatusAccepted,
		SelectedDate: &chosen,
	})
}

func (s *matchingService) RejectRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	if _, err := s.pendingFor(ctx, requestID, actorID, false); err != nil {
		return nil, err
	}
	return s.resolve(ctx, repository.ResolveParams{
		ID:      requestID,
		ActorID: actorID,
		Status:  domain.MatchingRequestStatusRejected,
	})
}

func (s *matchingService) CancelRequest(ctx context.Context, actorID, requestID uuid.UUID) (*domain.MatchingRequest, error) {
	if _, err := s.pendingFor(ctx, requestID, actorID, true); err != nil {
		return nil, err
	}
	return s.resolve(ctx, repository.ResolveParams{
		ID:          requestID,
		ActorID:     actorID,
		ActorIsFrom: true,
		Status:      domain.MatchingRequestStatusCancelled,
	})
}

// pendingFor loads the request and checks that actorID may resolve it and
// that it is still pending.
func (s *matchingService) pendingFor(ctx context.Context, requestID, actorID uuid.UUID, asRequester bool) (*domain.MatchingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, domain.Remote("requestRepo.GetByID", err)
	}
	if asRequester && req.FromUserID != actorID {
		return nil, fmt.Errorf("%w: only the requester can cancel this request", domain.ErrAuthorization)
	}
	if !asRequester && req.ToUserID != actorID {
		return nil, fmt.Errorf("%w: only the recipient can respond to this request", domain.ErrAuthorization)
	}
	if req.Status != domain.MatchingRequestStatusPending {
		return nil, fmt.Errorf("%w: request is already %s", domain.ErrInvalidState, req.Status)
	}
	return req, nil
}

func (s *matchingService) resolve(ctx context.Context, p repository.ResolveParams) (*domain.MatchingRequest, error) {
	updated, err := s.requestRepo.Resolve(ctx, p)
	if err != nil {
		return nil, domain.Remote("requestRepo.Resolve", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: request was resolved by another action", domain.ErrInvalidState)
	}
	logger.InfoContext(ctx, "Matching request resolved", "requestID", updated.ID, "status", updated.Status)

	s.notifier.MatchingRequestResolved(ctx, updated)
	return updated, nil
}

func (s *matchingService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()
	today := now.Format("2006-01-02")
	expired, err := s.requestRepo.ExpireStale(ctx, today, now.Add(-s.pendingTTL))
	if err != nil {
		return 0, domain.Remote("requestRepo.ExpireStale", err)
	}
	for i := range expired {
		s.notifier.MatchingRequestResolved(ctx, &expired[i])
	}
	return len(expired), nil
}

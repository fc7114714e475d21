package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/service"
)

type MatchingHandler struct {
	matchingSvc service.MatchingService
}

func NewMatchingHandler(matchingSvc service.MatchingService) *MatchingHandler {
	return &MatchingHandler{matchingSvc: matchingSvc}
}

type matchingListResponse struct {
	Requests []domain.MatchingRequest `json:"requests"`
}

type acceptRequest struct {
	SelectedDate domain.ProposedDate `json:"selected_date"`
}

func (h *MatchingHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	var in service.CreateMatchingRequestInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, 0)
		return
	}
	in.FromUserID = p.UserID
	req, err := h.matchingSvc.CreateRequest(r.Context(), in)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *MatchingHandler) ListSent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.matchingSvc.ListSent)
}

func (h *MatchingHandler) ListReceived(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.matchingSvc.ListReceived)
}

func (h *MatchingHandler) list(w http.ResponseWriter, r *http.Request, fetch func(context.Context, uuid.UUID) ([]domain.MatchingRequest, error)) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	reqs, err := fetch(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if reqs == nil {
		reqs = []domain.MatchingRequest{}
	}
	writeJSON(w, http.StatusOK, matchingListResponse{Requests: reqs})
}

func (h *MatchingHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matchingSvc.GetRequest)
}

func (h *MatchingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var body acceptRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, 0)
		return
	}
	if body.SelectedDate.Date == "" {
		writeError(w, r, domain.Validationf("selected_date.date is required"), 0)
		return
	}
	h.act(w, r, func(ctx context.Context, actorID, id uuid.UUID) (*domain.MatchingRequest, error) {
		return h.matchingSvc.AcceptRequest(ctx, actorID, id, body.SelectedDate)
	})
}

func (h *MatchingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matchingSvc.RejectRequest)
}

func (h *MatchingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.matchingSvc.CancelRequest)
}

// act runs op for the caller against the request named in the path.
func (h *MatchingHandler) act(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, uuid.UUID) (*domain.MatchingRequest, error)) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	req, err := op(r.Context(), p.UserID, id)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

package http

import (
	"net/http"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/service"
)

type VisitPlanHandler struct {
	planSvc service.VisitPlanService
}

func NewVisitPlanHandler(planSvc service.VisitPlanService) *VisitPlanHandler {
	return &VisitPlanHandler{planSvc: planSvc}
}

type planListResponse struct {
	Plans []domain.VisitPlan `json:"plans"`
}

type entryListResponse struct {
	Entries []domain.VisitPlanEntry `json:"entries"`
}

type calendarResponse struct {
	Days []domain.CalendarDay `json:"days"`
}

func (h *VisitPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	var in service.VisitPlanInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, 0)
		return
	}
	plan, err := h.planSvc.CreatePlan(r.Context(), p.UserID, in)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *VisitPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var in service.VisitPlanInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err, 0)
		return
	}
	plan, err := h.planSvc.UpdatePlan(r.Context(), p.UserID, id, in)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *VisitPlanHandler) Cancel(w http.ResponseWriter, r *http.Request) {
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
	if err := h.planSvc.CancelPlan(r.Context(), p.UserID, id); err != nil {
		writeError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VisitPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	plan, err := h.planSvc.GetPlan(r.Context(), p.UserID, id)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *VisitPlanHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	dr, err := dateRange(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	plans, err := h.planSvc.ListMine(r.Context(), p.UserID, dr)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if plans == nil {
		plans = []domain.VisitPlan{}
	}
	writeJSON(w, http.StatusOK, planListResponse{Plans: plans})
}

// Query lists plans visible to the caller, who may be a guest.
func (h *VisitPlanHandler) Query(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	entries, err := h.planSvc.Query(r.Context(), viewerID(r.Context()), dr)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, entryListResponse{Entries: entries})
}

func (h *VisitPlanHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRange(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	days, err := h.planSvc.Calendar(r.Context(), viewerID(r.Context()), dr)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{Days: days})
}

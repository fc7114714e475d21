package http

import (
	"net/http"

	"members-lounge-backend/internal/service"
)

type ProfileHandler struct {
	profileSvc    service.ProfileService
	membershipSvc service.MembershipService
}

func NewProfileHandler(profileSvc service.ProfileService, membershipSvc service.MembershipService) *ProfileHandler {
	return &ProfileHandler{
		profileSvc:    profileSvc,
		membershipSvc: membershipSvc,
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	profile, err := h.profileSvc.GetProfile(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	var update service.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err, 0)
		return
	}
	profile, err := h.profileSvc.UpdateProfile(r.Context(), p.UserID, update)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	m, err := h.membershipSvc.GetMembership(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *ProfileHandler) CancelMembership(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	m, err := h.membershipSvc.CancelSubscription(r.Context(), p.UserID)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

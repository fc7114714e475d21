package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Total         int32                 `json:"total"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	page, err := queryInt32(r, "page")
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	pageSize, err := queryInt32(r, "page_size")
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), p.UserID, page, pageSize)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, notificationListResponse{Notifications: notes, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, r, domain.Validationf("id must be an integer"), 0)
		return
	}
	if err := h.noteSvc.MarkAsRead(r.Context(), p.UserID, id); err != nil {
		writeError(w, r, err, 0)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

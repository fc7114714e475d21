package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"members-lounge-backend/internal/security"
	"members-lounge-backend/internal/service"
	"members-lounge-backend/internal/storage"
)

// Services bundles what the HTTP API serves.
type Services struct {
	Auth         service.AuthService
	Profile      service.ProfileService
	Membership   service.MembershipService
	Matching     service.MatchingService
	VisitPlan    service.VisitPlanService
	Notification service.NotificationService

	// Avatar uploads and /media/ are served only when Media is set.
	Avatar         service.AvatarService
	Media          storage.Store
	MaxAvatarBytes int64
}

const idPattern = "{id:[0-9a-fA-F-]{36}}"

// NewRouter registers every named route. Route names are the keys of
// config.EndpointSecurityConfig.
func NewRouter(svcs Services, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger, Recoverer)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet).Name("healthz")

	var media *MediaHandler
	if svcs.Media != nil {
		media = NewMediaHandler(svcs.Avatar, svcs.Media, svcs.MaxAvatarBytes)
		router.HandleFunc(storage.MediaPrefix+"{key:.+}", media.Serve).Methods(http.MethodGet).Name("media.get")
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Middleware)

	auth := NewAuthHandler(svcs.Auth)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost).Name("auth.login")
	api.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost).Name("auth.refresh")

	profile := NewProfileHandler(svcs.Profile, svcs.Membership)
	api.HandleFunc("/me/profile", profile.GetProfile).Methods(http.MethodGet).Name("profile.get")
	api.HandleFunc("/me/profile", profile.UpdateProfile).Methods(http.MethodPut).Name("profile.update")
	if media != nil {
		api.HandleFunc("/me/avatar", media.UploadAvatar).Methods(http.MethodPut).Name("profile.avatar")
	}
	api.HandleFunc("/me/membership", profile.GetMembership).Methods(http.MethodGet).Name("membership.get")
	api.HandleFunc("/me/membership/cancel", profile.CancelMembership).Methods(http.MethodPost).Name("membership.cancel")

	matching := NewMatchingHandler(svcs.Matching)
	api.HandleFunc("/matching-requests", matching.Create).Methods(http.MethodPost).Name("matching.create")
	api.HandleFunc("/matching-requests/sent", matching.ListSent).Methods(http.MethodGet).Name("matching.sent")
	api.HandleFunc("/matching-requests/received", matching.ListReceived).Methods(http.MethodGet).Name("matching.received")
	api.HandleFunc("/matching-requests/"+idPattern, matching.Get).Methods(http.MethodGet).Name("matching.get")
	api.HandleFunc("/matching-requests/"+idPattern+"/accept", matching.Accept).Methods(http.MethodPost).Name("matching.accept")
	api.HandleFunc("/matching-requests/"+idPattern+"/reject", matching.Reject).Methods(http.MethodPost).Name("matching.reject")
	api.HandleFunc("/matching-requests/"+idPattern+"/cancel", matching.Cancel).Methods(http.MethodPost).Name("matching.cancel")

	plans := NewVisitPlanHandler(svcs.VisitPlan)
	api.HandleFunc("/visit-plans", plans.Create).Methods(http.MethodPost).Name("visitplans.create")
	api.HandleFunc("/visit-plans", plans.Query).Methods(http.MethodGet).Name("visitplans.query")
	api.HandleFunc("/visit-plans/mine", plans.ListMine).Methods(http.MethodGet).Name("visitplans.mine")
	api.HandleFunc("/visit-plans/calendar", plans.Calendar).Methods(http.MethodGet).Name("visitplans.calendar")
	api.HandleFunc("/visit-plans/"+idPattern, plans.Get).Methods(http.MethodGet).Name("visitplans.get")
	api.HandleFunc("/visit-plans/"+idPattern, plans.Update).Methods(http.MethodPut).Name("visitplans.update")
	api.HandleFunc("/visit-plans/"+idPattern+"/cancel", plans.Cancel).Methods(http.MethodPost).Name("visitplans.cancel")

	notes := NewNotificationHandler(svcs.Notification)
	api.HandleFunc("/notifications", notes.List).Methods(http.MethodGet).Name("notifications.list")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", notes.MarkAsRead).Methods(http.MethodPost).Name("notifications.read")

	return router
}

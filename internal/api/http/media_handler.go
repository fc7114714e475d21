package http

import (
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"

	"github.com/gorilla/mux"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/logger"
	"members-lounge-backend/internal/service"
	"members-lounge-backend/internal/storage"
)

// MediaHandler accepts avatar uploads and serves stored files back.
type MediaHandler struct {
	avatarSvc service.AvatarService
	store     storage.Store
	maxBytes  int64
}

func NewMediaHandler(avatarSvc service.AvatarService, store storage.Store, maxBytes int64) *MediaHandler {
	if maxBytes <= 0 {
		maxBytes = service.DefaultMaxAvatarBytes
	}
	return &MediaHandler{
		avatarSvc: avatarSvc,
		store:     store,
		maxBytes:  maxBytes,
	}
}

// UploadAvatar takes the raw image as the request body, typed by Content-Type.
func (h *MediaHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, domain.Validationf("Content-Type must name an image type"), 0)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBytes+1)
	profile, err := h.avatarSvc.UploadAvatar(r.Context(), p.UserID, contentType, body)
	if err != nil {
		writeError(w, r, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Serve streams a stored file.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, storage.ErrInvalidKey) {
			writeError(w, r, domain.ErrNotFound, 0)
			return
		}
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if _, err := io.Copy(w, file); err != nil {
		logger.WarnContext(r.Context(), "Failed to stream media", "key", key, "error", err)
	}
}

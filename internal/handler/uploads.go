package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/service"
)

// UploadsHandler serves stored image bytes under /uploads/.
type UploadsHandler struct {
	posts *service.PostService
}

// NewUploadsHandler creates a new UploadsHandler.
func NewUploadsHandler(posts *service.PostService) *UploadsHandler {
	return &UploadsHandler{posts: posts}
}

// HandleServe serves image bytes with their original content type.
// GET /uploads/{name}
func (h *UploadsHandler) HandleServe(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, contentType, err := h.posts.OpenImage(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("serve upload", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Names are never reused, so the bytes behind one never change.
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

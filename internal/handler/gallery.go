package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/service"
	"github.com/msomdec/imageshare/internal/view"
)

// GalleryHandler serves the HTML gallery and upload form.
type GalleryHandler struct {
	posts *service.PostService
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(posts *service.PostService) *GalleryHandler {
	return &GalleryHandler{posts: posts}
}

// HandleGallery renders all posts.
// GET /?sort=latest|oldest
func (h *GalleryHandler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	sort := domain.ParseSort(r.URL.Query().Get("sort"))
	posts, err := h.posts.List(r.Context(), sort)
	if err != nil {
		slog.Error("list posts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, view.GalleryPage(posts, sort))
}

// HandleShow renders a single post at full size.
// GET /posts/{id}
func (h *GalleryHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("get post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, view.PostPage(*post))
}

// HandleUploadForm renders an empty upload form.
// GET /upload
func (h *GalleryHandler) HandleUploadForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.UploadPage(view.UploadForm{}))
}

// HandleUploadSubmit creates a post from the upload form and redirects to
// the gallery. Rejected uploads re-render the form with the reason.
// POST /upload
func (h *GalleryHandler) HandleUploadSubmit(w http.ResponseWriter, r *http.Request) {
	in, err := readUpload(w, r)
	if err == nil {
		_, err = h.posts.Create(r.Context(), in)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			form := view.UploadForm{
				Title:       in.Title,
				Description: in.Description,
				Error:       strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "),
			}
			render(w, r, http.StatusBadRequest, view.UploadPage(form))
			return
		}
		slog.Error("upload post", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLike adds a like and patches the post's reaction buttons over SSE.
// POST /posts/{id}/like
func (h *GalleryHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.posts.Like)
}

// HandleDislike adds a dislike and patches the post's reaction buttons over SSE.
// POST /posts/{id}/dislike
func (h *GalleryHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.posts.Dislike)
}

func (h *GalleryHandler) react(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64) (*domain.Post, error)) {
	id, err := parsePostID(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	post, err := apply(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		slog.Error("react to post", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.Reactions(*post),
		datastar.WithSelectorID(view.ReactionsID(post.ID)),
	); err != nil {
		slog.Error("patch reactions", "id", id, "error", err)
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "error", err)
	}
}

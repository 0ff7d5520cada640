package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/service"
)

// PostHandler serves the JSON post API.
type PostHandler struct {
	posts *service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// HandleList returns all posts.
// GET /api/posts?sort=latest|oldest
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sort := domain.ParseSort(r.URL.Query().Get("sort"))
	posts, err := h.posts.List(r.Context(), sort)
	if err != nil {
		writePostError(w, err, "fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

// HandleGet returns a single post.
// GET /api/posts/{id}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writePostError(w, err, "fetch post")
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		writePostError(w, err, "fetch post")
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// HandleCreate accepts a multipart upload and creates a post.
// POST /api/posts
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := readUpload(w, r)
	if err != nil {
		writePostError(w, err, "create post")
		return
	}

	post, err := h.posts.Create(r.Context(), in)
	if err != nil {
		writePostError(w, err, "create post")
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(post))
}

// HandleLike adds a like.
// POST /api/posts/{id}/like
func (h *PostHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.posts.Like, "like post")
}

// HandleDislike adds a dislike.
// POST /api/posts/{id}/dislike
func (h *PostHandler) HandleDislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, h.posts.Dislike, "dislike post")
}

func (h *PostHandler) react(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64) (*domain.Post, error), action string) {
	id, err := parsePostID(r)
	if err != nil {
		writePostError(w, err, action)
		return
	}

	post, err := apply(r.Context(), id)
	if err != nil {
		writePostError(w, err, action)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

// writePostError maps domain errors to HTTP statuses. Unexpected errors are
// logged and reported without detail.
func writePostError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, domain.ErrMalformedID), errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "post not found")
	default:
		slog.Error(action, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

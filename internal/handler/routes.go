package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/msomdec/imageshare/internal/service"
)

// NewRouter builds the application router with its middleware stack.
// db may be nil when no durable backend is configured.
func NewRouter(posts *service.PostService, db Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)

	RegisterRoutes(r, posts, db)
	return r
}

// RegisterRoutes sets up all HTTP routes on the given router.
func RegisterRoutes(r chi.Router, posts *service.PostService, db Pinger) {
	health := NewHealthHandler(db)
	api := NewPostHandler(posts)
	uploads := NewUploadsHandler(posts)
	gallery := NewGalleryHandler(posts)

	r.Get("/healthz", health.HandleHealthz)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", api.HandleList)
		r.Post("/", api.HandleCreate)
		r.Get("/{id}", api.HandleGet)
		r.Post("/{id}/like", api.HandleLike)
		r.Post("/{id}/dislike", api.HandleDislike)
	})

	r.Get("/uploads/{name}", uploads.HandleServe)

	r.Get("/", gallery.HandleGallery)
	r.Get("/upload", gallery.HandleUploadForm)
	r.Post("/upload", gallery.HandleUploadSubmit)
	r.Get("/posts/{id}", gallery.HandleShow)
	r.Post("/posts/{id}/like", gallery.HandleLike)
	r.Post("/posts/{id}/dislike", gallery.HandleDislike)
}

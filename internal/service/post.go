package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/imageshare/internal/domain"
)

// CreatePostInput carries an upload as received from a client.
type CreatePostInput struct {
	Title       string
	Description string
	ContentType string // declared MIME type of Data
	Data        []byte
}

// PostService orchestrates post creation, listing and reactions.
type PostService struct {
	posts   domain.PostRepository
	content *ContentStore
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, content *ContentStore) *PostService {
	return &PostService{posts: posts, content: content}
}

// Create validates an upload, stores its bytes and records the post.
// Nothing is written unless validation passes, and no post is recorded
// unless the bytes were stored.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.Post, error) {
	if err := ValidateImage(in.ContentType, int64(len(in.Data))); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrMissingTitle
	}

	imagePath, err := s.content.Write(ctx, in.Data, ImageExtension(in.ContentType))
	if err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	post := &domain.Post{
		Title:       title,
		Description: in.Description,
		ImagePath:   imagePath,
		ImageType:   in.ContentType,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		// Best-effort cleanup so the bytes are not left unreferenced.
		if rmErr := s.content.Remove(ctx, imagePath); rmErr != nil {
			slog.Warn("remove orphaned image", "path", imagePath, "error", rmErr)
		}
		return nil, fmt.Errorf("%w: create post record: %w", domain.ErrStorage, err)
	}

	slog.Info("post created", "id", post.ID, "image_path", post.ImagePath, "size", len(in.Data))
	return post, nil
}

// Get returns a post by ID.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// List returns all posts in the requested order.
func (s *PostService) List(ctx context.Context, sort domain.PostSort) ([]domain.Post, error) {
	return s.posts.List(ctx, sort)
}

// Like adds one like to a post and returns the updated post.
func (s *PostService) Like(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.IncrementLikes(ctx, id)
}

// Dislike adds one dislike to a post and returns the updated post.
func (s *PostService) Dislike(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.IncrementDislikes(ctx, id)
}

// OpenImage returns the bytes and content type stored under an image name.
func (s *PostService) OpenImage(ctx context.Context, name string) ([]byte, string, error) {
	return s.content.Read(ctx, name)
}

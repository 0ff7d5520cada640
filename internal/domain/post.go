package domain

import (
	"context"
	"time"
)

// Post is a shared image together with its metadata and reaction counters.
type Post struct {
	ID          int64
	Title       string
	Description string
	ImagePath   string // "/uploads/{name}.{ext}", assigned by the content store
	ImageType   string // "image/jpeg", "image/png" or "image/gif"
	Likes       int64
	Dislikes    int64
	CreatedAt   time.Time
}

// PostSort selects the listing order for posts.
type PostSort string

const (
	SortLatest PostSort = "latest"
	SortOldest PostSort = "oldest"
)

// ParseSort maps a user-supplied sort value to a PostSort.
// Anything other than "oldest" is treated as latest.
func ParseSort(s string) PostSort {
	if PostSort(s) == SortOldest {
		return SortOldest
	}
	return SortLatest
}

// PostRepository owns post persistence. Posts are never deleted and only
// their reaction counters change after Create.
type PostRepository interface {
	// Create assigns ID and CreatedAt, resets the counters to zero and stores the post.
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	// List returns every post ordered by creation time, ties broken by ID.
	List(ctx context.Context, sort PostSort) ([]Post, error)
	IncrementLikes(ctx context.Context, id int64) (*Post, error)
	IncrementDislikes(ctx context.Context, id int64) (*Post, error)
}

// FileStore abstracts raw file byte storage keyed by file name.
type FileStore interface {
	// Init prepares the backing location. It must be safe to call repeatedly.
	Init(ctx context.Context) error
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

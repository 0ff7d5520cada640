// Package memory provides a process-local PostRepository.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/msomdec/imageshare/internal/domain"
)

// PostRepository implements domain.PostRepository with a map guarded by a
// single mutex. IDs come from a counter that is only advanced under the lock.
type PostRepository struct {
	mu     sync.RWMutex
	posts  map[int64]*domain.Post
	nextID int64
	now    func() time.Time
}

// NewPostRepository creates an empty repository.
func NewPostRepository() *PostRepository {
	return NewPostRepositoryWithClock(time.Now)
}

// NewPostRepositoryWithClock creates an empty repository that stamps
// CreatedAt using now.
func NewPostRepositoryWithClock(now func() time.Time) *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]*domain.Post),
		nextID: 1,
		now:    now,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	post.CreatedAt = r.now().UTC()
	post.Likes = 0
	post.Dislikes = 0
	r.nextID++

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	post := *p
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, sort domain.PostSort) ([]domain.Post, error) {
	r.mu.RLock()
	posts := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, *p)
	}
	r.mu.RUnlock()

	slices.SortFunc(posts, func(a, b domain.Post) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if sort != domain.SortOldest {
		slices.Reverse(posts)
	}
	return posts, nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(id, func(p *domain.Post) { p.Likes++ })
}

func (r *PostRepository) IncrementDislikes(ctx context.Context, id int64) (*domain.Post, error) {
	return r.update(id, func(p *domain.Post) { p.Dislikes++ })
}

// update applies fn to the stored post and returns a copy, all under the write lock.
func (r *PostRepository) update(id int64, fn func(*domain.Post)) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fn(p)
	post := *p
	return &post, nil
}

// Package repotest holds the behaviour every domain.PostRepository must share.
package repotest

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/msomdec/imageshare/internal/domain"
)

// NewPost returns an unsaved post with a unique image path.
func NewPost(title string) *domain.Post {
	return &domain.Post{
		Title:       title,
		Description: "a description",
		ImagePath:   "/uploads/" + uuid.NewString() + ".png",
		ImageType:   "image/png",
	}
}

// TestPostRepository runs the shared contract against repositories built by newRepo.
// newRepo must return an empty repository.
func TestPostRepository(t *testing.T, newRepo func(t *testing.T) domain.PostRepository) {
	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var last int64
		for i := 0; i < 5; i++ {
			p := NewPost("post")
			p.Likes = 7 // must be ignored
			if err := repo.Create(ctx, p); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if p.ID <= last {
				t.Fatalf("expected ID greater than %d, got %d", last, p.ID)
			}
			if p.CreatedAt.IsZero() {
				t.Fatal("expected CreatedAt to be set")
			}
			if p.Likes != 0 || p.Dislikes != 0 {
				t.Fatalf("expected zero counters, got likes=%d dislikes=%d", p.Likes, p.Dislikes)
			}
			last = p.ID
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := NewPost("Sunset")
		p.Description = ""
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		first, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		second, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("second GetByID: %v", err)
		}

		for _, got := range []*domain.Post{first, second} {
			assertSamePost(t, p, got)
		}
	})

	t.Run("GetByIDNotFound", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListEmpty", func(t *testing.T) {
		repo := newRepo(t)
		posts, err := repo.List(context.Background(), domain.SortLatest)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(posts) != 0 {
			t.Fatalf("expected no posts, got %d", len(posts))
		}
	})

	t.Run("ListOrders", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []int64
		for _, title := range []string{"one", "two", "three", "four"} {
			p := NewPost(title)
			if err := repo.Create(ctx, p); err != nil {
				t.Fatalf("Create: %v", err)
			}
			ids = append(ids, p.ID)
		}

		oldest, err := repo.List(ctx, domain.SortOldest)
		if err != nil {
			t.Fatalf("List oldest: %v", err)
		}
		latest, err := repo.List(ctx, domain.SortLatest)
		if err != nil {
			t.Fatalf("List latest: %v", err)
		}

		if got := postIDs(oldest); !slices.Equal(got, ids) {
			t.Fatalf("oldest: expected %v, got %v", ids, got)
		}
		reversed := slices.Clone(ids)
		slices.Reverse(reversed)
		if got := postIDs(latest); !slices.Equal(got, reversed) {
			t.Fatalf("latest: expected %v, got %v", reversed, got)
		}
	})

	t.Run("ListReturnsCopies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := NewPost("original")
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		posts, err := repo.List(ctx, domain.SortLatest)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		posts[0].Title = "mutated"
		posts[0].Likes = 100

		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Title != "original" || got.Likes != 0 {
			t.Fatalf("stored post was modified through List result: %+v", got)
		}
	})

	t.Run("IncrementCounters", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := NewPost("counted")
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		liked, err := repo.IncrementLikes(ctx, p.ID)
		if err != nil {
			t.Fatalf("IncrementLikes: %v", err)
		}
		if liked.Likes != 1 || liked.Dislikes != 0 {
			t.Fatalf("expected likes=1 dislikes=0, got likes=%d dislikes=%d", liked.Likes, liked.Dislikes)
		}

		disliked, err := repo.IncrementDislikes(ctx, p.ID)
		if err != nil {
			t.Fatalf("IncrementDislikes: %v", err)
		}
		if disliked.Likes != 1 || disliked.Dislikes != 1 {
			t.Fatalf("expected likes=1 dislikes=1, got likes=%d dislikes=%d", disliked.Likes, disliked.Dislikes)
		}
		if disliked.Title != p.Title || disliked.ImagePath != p.ImagePath || !disliked.CreatedAt.Equal(p.CreatedAt) {
			t.Fatalf("increment changed immutable fields: %+v", disliked)
		}
	})

	t.Run("IncrementNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := NewPost("untouched")
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		if _, err := repo.IncrementLikes(ctx, 999999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("IncrementLikes: expected ErrNotFound, got %v", err)
		}
		if _, err := repo.IncrementDislikes(ctx, 999999); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("IncrementDislikes: expected ErrNotFound, got %v", err)
		}

		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Likes != 0 || got.Dislikes != 0 {
			t.Fatalf("existing post changed: likes=%d dislikes=%d", got.Likes, got.Dislikes)
		}
	})

	t.Run("ConcurrentCreateUniqueIDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const n = 20
		ids := make([]int64, n)
		errs := make([]error, n)
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := NewPost("concurrent")
				errs[i] = repo.Create(ctx, p)
				ids[i] = p.ID
			}()
		}
		wg.Wait()

		seen := make(map[int64]bool)
		for i, id := range ids {
			if errs[i] != nil {
				t.Fatalf("Create %d: %v", i, errs[i])
			}
			if seen[id] {
				t.Fatalf("duplicate ID %d", id)
			}
			seen[id] = true
		}
	})

	t.Run("ConcurrentLikesNoLostUpdates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := NewPost("popular")
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}

		const n = 50
		var wg sync.WaitGroup
		errs := make(chan error, 2*n)
		for range n {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := repo.IncrementLikes(ctx, p.ID); err != nil {
					errs <- err
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := repo.IncrementDislikes(ctx, p.ID); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Fatalf("increment: %v", err)
		}

		got, err := repo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Likes != n || got.Dislikes != n {
			t.Fatalf("expected likes=%d dislikes=%d, got likes=%d dislikes=%d", n, n, got.Likes, got.Dislikes)
		}
	})
}

func assertSamePost(t *testing.T, want, got *domain.Post) {
	t.Helper()
	if got.ID != want.ID || got.Title != want.Title || got.Description != want.Description ||
		got.ImagePath != want.ImagePath || got.ImageType != want.ImageType ||
		got.Likes != want.Likes || got.Dislikes != want.Dislikes {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Fatalf("expected CreatedAt %v, got %v", want.CreatedAt, got.CreatedAt)
	}
}

func postIDs(posts []domain.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

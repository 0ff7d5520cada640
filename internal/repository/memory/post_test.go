package memory_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/repository/memory"
	"github.com/msomdec/imageshare/internal/repository/repotest"
)

var _ domain.PostRepository = (*memory.PostRepository)(nil)

func TestPostRepository_Contract(t *testing.T) {
	repotest.TestPostRepository(t, func(t *testing.T) domain.PostRepository {
		return memory.NewPostRepository()
	})
}

func TestPostRepository_IDsStartAtOne(t *testing.T) {
	repo := memory.NewPostRepository()
	p := repotest.NewPost("first")
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != 1 {
		t.Fatalf("expected first ID 1, got %d", p.ID)
	}
}

// A clock that runs backwards makes insertion order and time order disagree,
// so the listing must follow CreatedAt rather than ID.
func TestPostRepository_ListSortsByCreatedAt(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stamps := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	i := 0
	repo := memory.NewPostRepositoryWithClock(func() time.Time {
		ts := stamps[i]
		i++
		return ts
	})
	ctx := context.Background()

	for _, title := range []string{"late", "early", "middle"} {
		if err := repo.Create(ctx, repotest.NewPost(title)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	oldest, err := repo.List(ctx, domain.SortOldest)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := titles(oldest); !slices.Equal(got, []string{"early", "middle", "late"}) {
		t.Fatalf("oldest: got %v", got)
	}

	latest, err := repo.List(ctx, "bogus")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := titles(latest); !slices.Equal(got, []string{"late", "middle", "early"}) {
		t.Fatalf("latest: got %v", got)
	}
}

func TestPostRepository_TiesBrokenByID(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo := memory.NewPostRepositoryWithClock(func() time.Time { return fixed })
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, repotest.NewPost(title)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	oldest, _ := repo.List(ctx, domain.SortOldest)
	if got := titles(oldest); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("oldest: got %v", got)
	}
	latest, _ := repo.List(ctx, domain.SortLatest)
	if got := titles(latest); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Fatalf("latest: got %v", got)
	}
}

func TestPostRepository_CallerCannotMutateStoredPost(t *testing.T) {
	repo := memory.NewPostRepository()
	ctx := context.Background()

	p := repotest.NewPost("kept")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.Title = "changed after create"

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got.Likes = 42

	again, _ := repo.GetByID(ctx, p.ID)
	if again.Title != "kept" || again.Likes != 0 {
		t.Fatalf("stored post was modified: %+v", again)
	}
}

func titles(posts []domain.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

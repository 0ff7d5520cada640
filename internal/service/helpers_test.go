package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/repository/disk"
	"github.com/msomdec/imageshare/internal/repository/memory"
	"github.com/msomdec/imageshare/internal/service"
)

var errBackend = errors.New("backend unavailable")

// newTestPostService wires a PostService to a memory repository and a disk
// store in a temporary directory.
func newTestPostService(t *testing.T) (*service.PostService, *memory.PostRepository, string) {
	t.Helper()
	dir := t.TempDir()
	content := service.NewContentStore(disk.NewFileStore(dir))
	if err := content.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	repo := memory.NewPostRepository()
	return service.NewPostService(repo, content), repo, dir
}

func pngInput(title string, size int) service.CreatePostInput {
	return service.CreatePostInput{
		Title:       title,
		ContentType: "image/png",
		Data:        make([]byte, size),
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	return len(entries)
}

// failingFileStore fails every write.
type failingFileStore struct {
	saves int
}

func (f *failingFileStore) Init(ctx context.Context) error { return nil }

func (f *failingFileStore) Save(ctx context.Context, key string, data []byte) error {
	f.saves++
	return errBackend
}

func (f *failingFileStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, domain.ErrNotFound
}

func (f *failingFileStore) Delete(ctx context.Context, key string) error { return nil }

// failingPostRepository rejects every Create.
type failingPostRepository struct {
	domain.PostRepository
}

func (failingPostRepository) Create(ctx context.Context, post *domain.Post) error {
	return errBackend
}

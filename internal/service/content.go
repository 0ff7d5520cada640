package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/msomdec/imageshare/internal/domain"
)

// UploadsPrefix is the URL prefix under which stored images are served.
const UploadsPrefix = "/uploads/"

// ContentStore writes image bytes under random names and resolves the
// resulting paths back to their bytes.
type ContentStore struct {
	files domain.FileStore
}

// NewContentStore creates a ContentStore backed by the given FileStore.
func NewContentStore(files domain.FileStore) *ContentStore {
	return &ContentStore{files: files}
}

// Init makes sure the storage location exists. Call it once before serving traffic.
func (c *ContentStore) Init(ctx context.Context) error {
	if err := c.files.Init(ctx); err != nil {
		return fmt.Errorf("%w: init file store: %w", domain.ErrStorage, err)
	}
	return nil
}

// Write stores data under a fresh name with the given extension and returns
// its path, "/uploads/{name}.{ext}".
func (c *ContentStore) Write(ctx context.Context, data []byte, ext string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: generate file name: %w", domain.ErrStorage, err)
	}
	name := id.String() + "." + ext

	if err := c.files.Save(ctx, name, data); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return UploadsPrefix + name, nil
}

// Read returns the bytes and content type for a stored image. It accepts
// either a full "/uploads/..." path or the bare file name.
func (c *ContentStore) Read(ctx context.Context, p string) ([]byte, string, error) {
	name, contentType, ok := parseStoredName(p)
	if !ok {
		return nil, "", domain.ErrNotFound
	}

	data, err := c.files.Get(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return data, contentType, nil
}

// Remove deletes a stored image.
func (c *ContentStore) Remove(ctx context.Context, p string) error {
	name, _, ok := parseStoredName(p)
	if !ok {
		return domain.ErrNotFound
	}
	return c.files.Delete(ctx, name)
}

// parseStoredName accepts only names this store could have produced:
// "{uuid}.{ext}" with an accepted image extension.
func parseStoredName(p string) (name, contentType string, ok bool) {
	name = strings.TrimPrefix(p, UploadsPrefix)
	if name != path.Base(name) {
		return "", "", false
	}

	base, ext, found := strings.Cut(name, ".")
	if !found {
		return "", "", false
	}
	if len(base) != 36 {
		return "", "", false
	}
	if _, err := uuid.Parse(base); err != nil {
		return "", "", false
	}
	contentType = ContentTypeForExtension(ext)
	if contentType == "" {
		return "", "", false
	}
	return name, contentType, true
}

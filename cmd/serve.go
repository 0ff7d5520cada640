package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/imageshare/internal/config"
	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/handler"
	"github.com/msomdec/imageshare/internal/repository/disk"
	"github.com/msomdec/imageshare/internal/repository/memory"
	"github.com/msomdec/imageshare/internal/repository/postgres"
	"github.com/msomdec/imageshare/internal/repository/sqlite"
	"github.com/msomdec/imageshare/internal/service"
)

// backends is the set of stores selected by the configuration.
type backends struct {
	posts domain.PostRepository
	files domain.FileStore
	dbs   []domain.Database // in the order they were opened
}

// Close closes the databases in reverse order of opening.
func (b *backends) Close() {
	for i := len(b.dbs) - 1; i >= 0; i-- {
		if err := b.dbs[i].Close(); err != nil {
			slog.Error("close database", "error", err)
		}
	}
}

// Ping reports the first database that fails to answer.
func (b *backends) Ping(ctx context.Context) error {
	for _, db := range b.dbs {
		if err := db.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

// pinger returns the health check target, or nil when nothing durable is open.
func (b *backends) pinger() handler.Pinger {
	if len(b.dbs) == 0 {
		return nil
	}
	return b
}

// open adds db to the set and applies its migrations.
func (b *backends) open(ctx context.Context, name string, db domain.Database) error {
	b.dbs = append(b.dbs, db)
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	slog.Info("database ready", "backend", name)
	return nil
}

// openBackends opens and migrates whatever databases cfg asks for.
func openBackends(ctx context.Context, cfg config.Config) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	var sqliteDB *sqlite.DB
	if cfg.NeedsSQLite() {
		sqliteDB, err = sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := b.open(ctx, "sqlite", sqliteDB); err != nil {
			return nil, err
		}
	}

	switch cfg.PostStore {
	case config.PostStoreMemory:
		b.posts = memory.NewPostRepository()
	case config.PostStoreSQLite:
		b.posts = sqliteDB.Posts()
	case config.PostStorePostgres:
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := b.open(ctx, "postgres", pg); err != nil {
			return nil, err
		}
		b.posts = pg.Posts()
	}

	switch cfg.ContentStore {
	case config.ContentStoreDisk:
		files := disk.NewFileStore(cfg.UploadsDir)
		slog.Info("storing uploads on disk", "dir", files.Dir())
		b.files = files
	case config.ContentStoreSQLite:
		slog.Info("storing uploads in sqlite", "path", cfg.DatabasePath)
		b.files = sqliteDB.FileStore()
	}
	return b, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	content := service.NewContentStore(b.files)
	if err := content.Init(ctx); err != nil {
		return err
	}

	posts := service.NewPostService(b.posts, content)
	slog.Info("storage ready", "post_store", cfg.PostStore, "content_store", cfg.ContentStore)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(posts, b.pinger()),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

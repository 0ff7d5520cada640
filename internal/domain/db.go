package domain

import "context"

// Database defines lifecycle operations for a durable backend.
// Each implementation (SQLite, Postgres) owns its own migration files,
// so the whole persistence layer stays swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

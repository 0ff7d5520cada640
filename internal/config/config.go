// Package config holds the server settings and their environment defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Post repository backends.
const (
	PostStoreMemory   = "memory"
	PostStoreSQLite   = "sqlite"
	PostStorePostgres = "postgres"
)

// Content store backends.
const (
	ContentStoreDisk   = "disk"
	ContentStoreSQLite = "sqlite"
)

// Config is everything the serve command needs to wire the application.
type Config struct {
	Port         string
	PostStore    string
	DatabasePath string // SQLite file, used by either sqlite backend
	DatabaseURL  string // Postgres DSN
	ContentStore string
	UploadsDir   string
	Verbose      bool
}

// FromEnv returns the configuration described by environment variables,
// falling back to defaults for anything unset.
func FromEnv() Config {
	verbose, _ := strconv.ParseBool(os.Getenv("VERBOSE"))
	return Config{
		Port:         envOrDefault("PORT", "8080"),
		PostStore:    envOrDefault("POST_STORE", PostStoreMemory),
		DatabasePath: envOrDefault("DATABASE_PATH", "imageshare.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ContentStore: envOrDefault("CONTENT_STORE", ContentStoreDisk),
		UploadsDir:   envOrDefault("UPLOADS_DIR", "uploads"),
		Verbose:      verbose,
	}
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q", c.Port)
	}

	switch c.PostStore {
	case PostStoreMemory:
	case PostStoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for the sqlite post store")
		}
	case PostStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres post store")
		}
	default:
		return fmt.Errorf("unknown post store %q (want memory, sqlite or postgres)", c.PostStore)
	}

	switch c.ContentStore {
	case ContentStoreDisk:
		if c.UploadsDir == "" {
			return fmt.Errorf("uploads dir is required for the disk content store")
		}
	case ContentStoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("database path is required for the sqlite content store")
		}
	default:
		return fmt.Errorf("unknown content store %q (want disk or sqlite)", c.ContentStore)
	}
	return nil
}

// NeedsSQLite reports whether any backend uses the SQLite database.
func (c Config) NeedsSQLite() bool {
	return c.PostStore == PostStoreSQLite || c.ContentStore == ContentStoreSQLite
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Package cmd implements the imageshare command line.
package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/msomdec/imageshare/internal/config"
	"github.com/msomdec/imageshare/internal/logging"
)

// Execute runs the root command.
func Execute() error {
	return newRootCommand().ExecuteContext(context.Background())
}

func newRootCommand() *cobra.Command {
	cfg := config.FromEnv()

	cmd := &cobra.Command{
		Use:   "imageshare",
		Short: "Image sharing server",
		Long: "imageshare serves an image gallery: uploads with a title and description, " +
			"a sortable listing, and like/dislike counters. Every flag defaults to its environment variable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  imageshare --port 8080
  POST_STORE=sqlite CONTENT_STORE=sqlite imageshare
  imageshare --post-store postgres --database-url postgres://localhost/imageshare`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(cfg.Verbose)
			if err := cfg.Validate(); err != nil {
				slog.Error("invalid configuration", "error", err)
				return err
			}
			if err := serve(cmd.Context(), cfg); err != nil {
				slog.Error("server failed", "error", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Port, "port", cfg.Port, "HTTP listen port (PORT)")
	f.StringVar(&cfg.PostStore, "post-store", cfg.PostStore, "post repository backend: memory, sqlite or postgres (POST_STORE)")
	f.StringVar(&cfg.DatabasePath, "database-path", cfg.DatabasePath, "SQLite database file (DATABASE_PATH)")
	f.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string (DATABASE_URL)")
	f.StringVar(&cfg.ContentStore, "content-store", cfg.ContentStore, "image byte storage: disk or sqlite (CONTENT_STORE)")
	f.StringVar(&cfg.UploadsDir, "uploads-dir", cfg.UploadsDir, "directory for uploaded images with the disk store (UPLOADS_DIR)")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging (VERBOSE)")

	return cmd
}

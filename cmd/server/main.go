// Package main implements the entry point for the vocabulary API server,
// which builds daily study decks, schedules reviews with SM-2 and keeps
// learners' reward points.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newRootCommand builds the CLI: `serve` runs the HTTP API and `migrate`
// manages the schema.
func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "vocab-api",
		Short:         "Vocabulary spaced-repetition API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCommand(&configPath), newMigrateCommand(&configPath))
	return root
}

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), *configPath)
		},
	}
}

// runServer loads configuration, connects to the database and serves until
// ctx is canceled.
func runServer(ctx context.Context, configPath string) error {
	cfg, logger, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

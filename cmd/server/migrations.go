package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spellwise/vocab-api/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// migrationRunner is the part of postgres.Migrator the CLI needs.
type migrationRunner interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
	Status(ctx context.Context) ([]postgres.MigrationStatus, error)
	Version(ctx context.Context) (int64, error)
}

var migrateActions = []string{"up", "down", "status", "version"}

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateActions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadAppConfig(*configPath)
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			migrator, err := postgres.NewMigrator(db, logger)
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), migrator, args[0], cmd.OutOrStdout(), logger)
		},
	}
}

// runMigrations executes one migrate action, writing status and version
// reports to out.
func runMigrations(
	ctx context.Context,
	m migrationRunner,
	action string,
	out io.Writer,
	logger *slog.Logger,
) error {
	if out == nil {
		out = os.Stdout
	}
	logger = logger.With(slog.String("correlation_id", uuid.New().String()))
	logger.Info("Executing migrations", slog.String("command", action))

	switch action {
	case "up":
		return m.Up(ctx)
	case "down":
		return m.Down(ctx)
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
		}
		return tw.Flush()
	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%d\n", v)
		return err
	default:
		return fmt.Errorf("unknown migrate command %q", action)
	}
}

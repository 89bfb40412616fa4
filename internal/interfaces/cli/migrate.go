package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dealbridge/dealbridge/internal/infrastructure/database/postgres"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := setup(opts)
				if err != nil {
					return err
				}
				if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
					return err
				}
				log.Info("migrations applied", logging.String("path", cfg.Database.MigrationPath))
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the last N migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					var err error
					steps, err = strconv.Atoi(args[0])
					if err != nil || steps < 1 {
						return fmt.Errorf("steps must be a positive integer, got %q", args[0])
					}
				}
				cfg, log, err := setup(opts)
				if err != nil {
					return err
				}
				if err := postgres.RollbackMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath, steps); err != nil {
					return err
				}
				log.Info("migrations rolled back", logging.Int("steps", steps))
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := setup(opts)
				if err != nil {
					return err
				}
				version, dirty, err := postgres.MigrationStatus(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath)
				if err != nil {
					return err
				}
				state := "clean"
				if dirty {
					state = "dirty"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, state)
				return nil
			},
		},
	)

	return cmd
}

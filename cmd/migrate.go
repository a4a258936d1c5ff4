package main

import (
	"fmt"
	"strconv"

	"store-admin-service/pkg/config"
	"store-admin-service/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				appConfig, log, err := setup(cmd)
				if err != nil {
					return err
				}
				defer log.Sync()
				return migrateUp(appConfig, log)
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Revert the last migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("invalid steps %q: %w", args[0], err)
					}
					steps = n
				}

				return withMigrator(cmd, func(mg *database.Migrator, log *zap.Logger) error {
					if err := mg.Down(steps); err != nil {
						return err
					}
					log.Info("Migrations reverted", zap.Int("steps", steps))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(mg *database.Migrator, log *zap.Logger) error {
					version, dirty, err := mg.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(*database.Migrator, *zap.Logger) error) error {
	appConfig, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	mg, err := database.NewMigrator(appConfig.DB.GetURL(), log)
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(mg, log)
}

func migrateUp(appConfig *config.Config, log *zap.Logger) error {
	mg, err := database.NewMigrator(appConfig.DB.GetURL(), log)
	if err != nil {
		return err
	}
	defer mg.Close()

	if err := mg.Up(); err != nil {
		return err
	}
	version, _, err := mg.Version()
	if err != nil {
		return err
	}
	log.Info("Database schema is up to date", zap.Uint("version", version))
	return nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagalog-breakdown/internal/adapter/postgres"
	"github.com/heartmarshall/tagalog-breakdown/internal/app"
)

var dryRun bool

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Repair every transcript of the configured source",
	Long: `Repair every transcript of the configured source (repair.source):
files under repair.input_dir, or the lesson_transcripts table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("dry-run") {
			cfg.Repair.DryRun = dryRun
		}
		if cfg.Repair.DryRun {
			logger.Info("dry-run mode: nothing is saved")
		}

		result, err := app.Run(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("batch repair failed", slog.String("error", err.Error()))
			return err
		}
		if result.Errors > 0 {
			return fmt.Errorf("%d transcripts could not be saved", result.Errors)
		}
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required")
		}
		n, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN, logger)
		if err != nil {
			return err
		}
		logger.Info("migrations complete", slog.Int("applied", n))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// No config needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
	},
}

func init() {
	batchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "repair without saving (overrides repair.dry_run)")
}

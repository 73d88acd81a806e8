// Command breakdown builds Pimsleur-style breakdowns for Tagalog phrases and
// repairs the breakdowns embedded in lesson transcripts.
//
// Usage:
//
//	breakdown compose "salamat po"
//	breakdown check lessons/*.txt
//	breakdown repair --in-place lessons/day-15.txt
//	breakdown batch            # config-driven, files or postgres
//
// Configuration follows CONFIG_PATH / config.yaml / environment; the
// persistent flags below override it.
//
// Exit codes: 0 = success, 1 = error or findings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagalog-breakdown/internal/app"
	"github.com/heartmarshall/tagalog-breakdown/internal/breakdown"
	"github.com/heartmarshall/tagalog-breakdown/internal/config"
)

var (
	// Global flags
	configPath  string
	logLevel    string
	logFormat   string
	lexiconPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Pimsleur-style breakdowns for Tagalog phrases",
	Long: `breakdown splits Tagalog phrases into graduated-recall sequences:
the smallest units are taught first and the phrase is rebuilt from the
right until it is whole again.

It also finds the "Key Phrases:" sections of lesson transcripts and
replaces their breakdowns with the canonical sequence.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		loaded.Log.Format = logFormat
	}
	if flags.Changed("lexicon") {
		loaded.Lexicon.Path = lexiconPath
	}

	cfg = loaded
	logger = app.NewLogger(cfg.Log)
	return nil
}

// newComposer returns a composer over the configured lexicon.
func newComposer() (*breakdown.Composer, error) {
	tables, err := app.LoadLexicon(cfg.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return breakdown.NewComposer(tables), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: json|text")
	rootCmd.PersistentFlags().StringVar(&lexiconPath, "lexicon", "", "YAML file extending the built-in lexicon")

	rootCmd.AddCommand(syllabifyCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(phrasesCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

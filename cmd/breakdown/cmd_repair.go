package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/tagalog-breakdown/internal/adapter/filestore"
	"github.com/heartmarshall/tagalog-breakdown/internal/app"
	"github.com/heartmarshall/tagalog-breakdown/internal/script"
)

var (
	inPlace bool
	voice   string
)

// errFindings makes check exit non-zero without an extra message per file.
var errFindings = errors.New("breakdowns differ from the canonical sequence")

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "List the key phrase spans of a transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Report breakdowns that differ from the canonical sequence",
	Long: `Report breakdowns that differ from the canonical sequence.
Exits 1 when any transcript has a mismatch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

var repairCmd = &cobra.Command{
	Use:   "repair FILE...",
	Short: "Replace transcript breakdowns with the canonical sequence",
	Long: `Replace transcript breakdowns with the canonical sequence.
Without --in-place the repaired transcript is written to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().BoolVar(&inPlace, "in-place", false, "rewrite the files instead of printing them")
	repairCmd.Flags().StringVar(&voice, "voice", "", "step rendering: bare|speaker (default from config)")
}

func newRepairer(cmd *cobra.Command) (*script.Repairer, error) {
	if cmd.Flags().Changed("voice") {
		cfg.Repair.Voice = voice
	}
	return app.NewRepairer(cfg, logger)
}

func runScan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, span := range script.NewScanner(logger).Scan(strings.Split(string(data), "\n")) {
		fmt.Fprintf(out, "%d\t%s\t%s\tlines %d-%d\n",
			span.IntroLine+1, span.Speaker, span.Phrase, span.Start+1, span.End)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	r, err := newRepairer(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, f := range r.Audit(string(data)) {
			total++
			fmt.Fprintf(out, "%s:%d: %q\n", path, f.Line, f.Phrase)
			if len(f.Missing) > 0 {
				fmt.Fprintf(out, "\tmissing: %s\n", strings.Join(f.Missing, " | "))
			}
			if len(f.Extra) > 0 {
				fmt.Fprintf(out, "\textra:   %s\n", strings.Join(f.Extra, " | "))
			}
			if len(f.Missing) == 0 && len(f.Extra) == 0 {
				fmt.Fprintln(out, "\twrong order")
			}
		}
	}

	if total > 0 {
		logger.Warn("check failed", slog.Int("findings", total), slog.Int("files", len(args)))
		return errFindings
	}
	return nil
}

func runRepair(cmd *cobra.Command, args []string) error {
	r, err := newRepairer(cmd)
	if err != nil {
		return err
	}

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		repaired, report := r.RepairWithReport(string(data))
		logger.Info("transcript repaired",
			slog.String("path", path),
			slog.Int("spans", report.Spans),
			slog.Int("rewritten", report.Rewritten),
			slog.Int("failed", report.Failed))

		if !inPlace {
			fmt.Fprint(cmd.OutOrStdout(), repaired)
			continue
		}
		if !report.Changed() {
			continue
		}
		if err := filestore.WriteFile(path, []byte(repaired), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

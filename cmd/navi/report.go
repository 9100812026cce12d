package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/report"
	"github.com/navi-hq/navi/internal/scoring"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a full health report",
		Long: `Compute the health score over stored messages and render a full report
with per-dimension breakdown, weekly pulse, per-person profiles, and
evidence examples.

The report pass is regex-only. Run 'navi analyze' first for an
oracle-assisted score; its result is stored in the run history.

Examples:
  # Markdown report to stdout
  navi report

  # Machine-readable export
  navi report --format json --output report.json`,
		RunE: runReport,
	}

	cmd.Flags().String("as-of", "", "report as of this date (YYYY-MM-DD, default: latest message)")
	cmd.Flags().String("format", "markdown", "output format (markdown, json)")
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	if format != "markdown" && format != "json" {
		return fmt.Errorf("invalid format: %s (expected markdown or json)", format)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	messages, err := loadMessages(ctx, store)
	if err != nil {
		return err
	}

	asOf, err := resolveAsOf(asOfFlag, messages)
	if err != nil {
		return err
	}

	scorer := scoring.NewHealthScorer(lexicon.NewRegistry(), nil)
	result := scorer.Score(ctx, messages, asOf)
	pulse := scorer.WeeklyPulse(ctx, messages, asOf)

	var rendered []byte
	switch format {
	case "json":
		rendered, err = report.RenderJSON(result)
		if err != nil {
			return fmt.Errorf("failed to render JSON: %w", err)
		}
	default:
		rendered = []byte(report.RenderMarkdown(result, pulse))
	}

	if output == "" {
		fmt.Print(string(rendered))
		return nil
	}

	if err := os.WriteFile(output, rendered, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	slog.Info("Report written", "path", output, "format", format)
	return nil
}

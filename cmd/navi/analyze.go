package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/navi-hq/navi/internal/cli"
	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/oracle"
	"github.com/navi-hq/navi/internal/parser"
	"github.com/navi-hq/navi/internal/report"
	"github.com/navi-hq/navi/internal/scoring"
	"github.com/navi-hq/navi/internal/service"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [export.txt]",
		Short: "Import a chat export and compute the health score",
		Long: `Parse a WhatsApp chat export, store its messages, and compute the
relationship health score over the trailing 30 days.

With an oracle API key configured (NAVI_ORACLE_API_KEY or ANTHROPIC_API_KEY),
ambiguous messages are sent for LLM judgment. Without one the analysis runs
entirely on local pattern matching.

Examples:
  # Import and score an export
  navi analyze ~/Downloads/_chat.txt

  # Re-score previously imported messages
  navi analyze

  # Score as of a past date
  navi analyze --as-of 2025-03-31`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("as-of", "", "score as of this date (YYYY-MM-DD, default: latest message)")
	cmd.Flags().Bool("regex-only", false, "skip oracle consultation even when configured")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	regexOnly, _ := cmd.Flags().GetBool("regex-only")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if len(args) == 1 {
		messages, parseErr := parser.ParseFile(args[0])
		if parseErr != nil {
			return parseErr
		}

		inserted, saveErr := store.SaveMessages(ctx, messages)
		if saveErr != nil {
			return fmt.Errorf("failed to save messages: %w", saveErr)
		}
		slog.Info("Imported chat export",
			"file", args[0],
			"parsed", len(messages),
			"new", inserted,
			"duplicates", len(messages)-inserted)
	}

	messages, err := loadMessages(ctx, store)
	if err != nil {
		return err
	}

	asOf, err := resolveAsOf(asOfFlag, messages)
	if err != nil {
		return err
	}

	tracker := oracle.NewCostTracker()
	var o oracle.Oracle
	var oracleModel string
	if !regexOnly {
		o, oracleModel = buildOracle(tracker)
	}

	scorer := scoring.NewHealthScorer(lexicon.NewRegistry(), o)

	spinner := cli.NewSpinner("Analyzing conversation...")
	result := scorer.Score(ctx, messages, asOf)
	pulse := scorer.WeeklyPulse(ctx, messages, asOf)
	cli.FinishSpinner(spinner)

	resultJSON, err := report.RenderJSON(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	runID, err := store.SaveRun(ctx, &service.ScoringRun{
		RunAt:        time.Now(),
		WindowStart:  result.WindowStart,
		WindowEnd:    result.WindowEnd,
		MessageCount: result.MessageCount,
		Overall:      result.Overall,
		LabelEN:      result.Label.EN,
		Confidence:   result.Confidence,
		OracleModel:  oracleModel,
		OracleCalls:  tracker.Count(),
		CostUSD:      tracker.TotalCost(),
		ResultJSON:   string(resultJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to save scoring run: %w", err)
	}

	printResult(result, pulse)

	if tracker.Count() > 0 {
		in, out := tracker.TotalTokens()
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
			"Oracle: %d consultations, %d in / %d out tokens, ~$%.2f",
			tracker.Count(), in, out, tracker.TotalCost())))
	}
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"Saved as run #%d. Full report: navi report", runID)))
	return nil
}

// printResult writes the styled terminal summary of a scoring run.
func printResult(result *model.HealthScoreResult, pulse []model.WeeklyScore) {
	fmt.Println()
	fmt.Println(cli.FormatTitle("Saúde do Relacionamento"))
	fmt.Printf("  %s  %s\n", cli.FormatScore(result.Overall), cli.FormatLabel(result.Label, result.Overall))
	fmt.Printf("  %s\n", cli.SubtleStyle.Render(fmt.Sprintf(
		"Janela: %s a %s · %d mensagens · confiança %.0f%%",
		result.WindowStart.Format("2006-01-02"),
		result.WindowEnd.Format("2006-01-02"),
		result.MessageCount,
		result.Confidence*100)))
	if result.Trend != "" {
		fmt.Printf("  %s\n", cli.FormatInfo("Tendência: "+result.Trend))
	}
	fmt.Println()

	for _, d := range result.Dimensions {
		fmt.Printf("  %s %s (peso %.0f%%)\n",
			cli.FormatScore(d.Score), cli.BoldStyle.Render(d.Label), d.Weight*100)
	}

	if len(result.Alerts) > 0 {
		fmt.Println()
		for _, a := range result.Alerts {
			fmt.Printf("  %s\n", cli.FormatAlert(a))
			if a.Recommendation != "" {
				fmt.Printf("    %s\n", cli.SubtleStyle.Render("Antídoto: "+a.Recommendation))
			}
		}
	}

	if len(pulse) > 0 {
		last := pulse[len(pulse)-1]
		fmt.Println()
		fmt.Printf("  %s\n", cli.SubtleStyle.Render(fmt.Sprintf(
			"Pulso: %d semanas analisadas, última (%s) em %.0f",
			len(pulse), last.WeekStart.Format("2006-01-02"), last.Score)))
	}
	fmt.Println()
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/navi-hq/navi/internal/cli"
	"github.com/navi-hq/navi/internal/detect"
	"github.com/navi-hq/navi/internal/lexicon"
	"github.com/navi-hq/navi/internal/model"
	"github.com/navi-hq/navi/internal/report"
	"github.com/navi-hq/navi/internal/scoring"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Show detected communication patterns",
		Long: `Display the communication patterns detected in the scoring window:
positive and negative counts per category, Gottman horsemen occurrences,
and example messages as evidence.

This is a regex-only pass; no oracle consultation happens here.`,
		RunE: runPatterns,
	}

	cmd.Flags().String("as-of", "", "analyze as of this date (YYYY-MM-DD, default: latest message)")
	cmd.Flags().Int("days", scoring.WindowDays, "window length in days")
	cmd.Flags().Bool("examples", true, "show example messages per category")
	return cmd
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	asOfFlag, _ := cmd.Flags().GetString("as-of")
	days, _ := cmd.Flags().GetInt("days")
	showExamples, _ := cmd.Flags().GetBool("examples")

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

	window := scoring.TrailingWindow(asOf, days)
	var inWindow []model.Message
	for _, m := range messages {
		if m.IsText() && window.Contains(m.Timestamp) {
			inWindow = append(inWindow, m)
		}
	}
	if len(inWindow) == 0 {
		fmt.Println(cli.FormatInfo("Nenhuma mensagem na janela analisada."))
		return nil
	}

	aggregator := detect.NewAggregator(detect.NewMatcher(lexicon.NewRegistry(), nil))
	summary := aggregator.AnalyzeConversation(ctx, inWindow)

	fmt.Println(cli.FormatTitle("Padrões de Comunicação"))
	fmt.Printf("  %s\n\n", cli.SubtleStyle.Render(fmt.Sprintf(
		"Janela: %s a %s · %d mensagens",
		window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"), len(inWindow))))

	fmt.Printf("  Positivas: %s  Negativas: %s  Proporção: %s\n\n",
		cli.HealthyStyle.Render(fmt.Sprintf("%d", summary.TotalPositive)),
		cli.CriticalStyle.Render(fmt.Sprintf("%d", summary.TotalNegative)),
		cli.BoldStyle.Render(fmt.Sprintf("%.1f:1", summary.PositiveRatio)))

	printFamilyTable(summary)

	if len(summary.HorsemenCounts) > 0 {
		fmt.Println(cli.CriticalStyle.Render("  Quatro Cavaleiros:"))
		horsemen := make([]string, 0, len(summary.HorsemenCounts))
		for h := range summary.HorsemenCounts {
			horsemen = append(horsemen, string(h))
		}
		sort.Strings(horsemen)
		for _, h := range horsemen {
			fmt.Printf("    %s: %d\n", h, summary.HorsemenCounts[model.Horseman(h)])
		}
		fmt.Println()
	}

	for _, a := range summary.Alerts {
		fmt.Printf("  %s\n", cli.FormatAlert(a))
	}

	if showExamples {
		printExamples(summary)
	}
	return nil
}

func printFamilyTable(summary *model.PatternSummary) {
	if len(summary.PositiveCounts) == 0 {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if err := w.Flush(); err != nil {
			slog.Error("failed to flush table writer", "error", err)
		}
	}()

	fmt.Fprintf(w, "  %s\t%s\n",
		cli.TableHeaderStyle.Render("Categoria"),
		cli.TableHeaderStyle.Render("Ocorrências"))
	fmt.Fprintf(w, "  %s\t%s\n", strings.Repeat("─", 24), strings.Repeat("─", 11))

	families := make([]string, 0, len(summary.PositiveCounts))
	for f := range summary.PositiveCounts {
		families = append(families, string(f))
	}
	sort.Strings(families)
	for _, f := range families {
		fmt.Fprintf(w, "  %s\t%d\n", f, summary.PositiveCounts[model.PatternFamily(f)])
	}
}

func printExamples(summary *model.PatternSummary) {
	examples := report.ExtractExamples(summary)
	if len(examples) == 0 {
		return
	}

	families := make([]string, 0, len(examples))
	for f := range examples {
		families = append(families, string(f))
	}
	sort.Strings(families)

	fmt.Println()
	fmt.Println(cli.SubtitleStyle.Render("  Exemplos"))
	for _, f := range families {
		fmt.Printf("  %s\n", cli.BoldStyle.Render(f))
		for _, ex := range examples[model.PatternFamily(f)] {
			fmt.Printf("    %s (%s): %q\n",
				ex.Sender, ex.Timestamp.Format("2006-01-02"), ex.Text)
		}
	}
}

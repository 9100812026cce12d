package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/navi-hq/navi/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scoring runs",
		Long: `Display past scoring runs with their scores, windows, and oracle spend,
newest first.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")
	cmd.Flags().Int64("show", 0, "print the stored JSON result of one run")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	showID, _ := cmd.Flags().GetInt64("show")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	if showID > 0 {
		run, getErr := store.GetRun(ctx, showID)
		if getErr != nil {
			return getErr
		}
		fmt.Println(run.ResultJSON)
		return nil
	}

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(cli.FormatInfo("No scoring runs yet. Run 'navi analyze' first."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Histórico de Análises"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Data"),
		cli.TableHeaderStyle.Render("Janela"),
		cli.TableHeaderStyle.Render("Msgs"),
		cli.TableHeaderStyle.Render("Score"),
		cli.TableHeaderStyle.Render("Status"),
		cli.TableHeaderStyle.Render("Oracle"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 4),
		strings.Repeat("─", 16),
		strings.Repeat("─", 23),
		strings.Repeat("─", 5),
		strings.Repeat("─", 5),
		strings.Repeat("─", 12),
		strings.Repeat("─", 14))

	for _, run := range runs {
		oracleCol := "—"
		if run.OracleCalls > 0 {
			oracleCol = fmt.Sprintf("%d calls $%.2f", run.OracleCalls, run.CostUSD)
		}
		fmt.Fprintf(w, "%d\t%s\t%s a %s\t%d\t%.1f\t%s\t%s\n",
			run.ID,
			run.RunAt.Format("2006-01-02 15:04"),
			run.WindowStart.Format("2006-01-02"),
			run.WindowEnd.Format("2006-01-02"),
			run.MessageCount,
			run.Overall,
			run.LabelEN,
			oracleCol)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerrecon/internal/config"
	"github.com/cleared-dev/ledgerrecon/internal/pipeline"
	"github.com/cleared-dev/ledgerrecon/internal/report"
	"github.com/cleared-dev/ledgerrecon/internal/runlog"
	"github.com/cleared-dev/ledgerrecon/internal/store"
)

func newRunCommand() *cobra.Command {
	var cfgPath string
	var printReport bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile income and expenses, persist the ledger and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, true)
			if err != nil {
				return err
			}
			return runPipeline(cmd.Context(), cmd.OutOrStdout(), cfg, printReport)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.FileName, "path to "+config.FileName)
	cmd.Flags().BoolVar(&printReport, "print", false, "render the report to the terminal")

	return cmd
}

func runPipeline(ctx context.Context, out io.Writer, cfg *config.Config, printReport bool) error {
	res, runErr := pipeline.Run(ctx, pipeline.Config{
		IncomePath:   cfg.Sources.Income,
		ExpensesPath: cfg.Sources.Expenses,
		Storage: store.Config{
			Driver: cfg.Storage.Driver,
			Path:   cfg.Storage.Path,
			DSN:    cfg.Storage.DSN,
			Table:  cfg.Storage.Table,
		},
		ReportPath: cfg.Report.Path,
		Currency:   cfg.Report.Currency,
		HostLabel:  cfg.HostLabel,
	}, pipeline.Deps{Logger: slog.Default()})

	entry := runlog.Entry{Timestamp: time.Now(), Command: "run", Outcome: runlog.OutcomeOK}
	if runErr != nil {
		entry.Outcome = runlog.OutcomeFailed
		entry.Details = runErr.Error()
	} else {
		entry.Rows = len(res.Rows)
		entry.RunID = res.RunID
		entry.Details = fmt.Sprintf("unmatched income %d, unmatched expenses %d", res.UnmatchedIncome, res.UnmatchedExpenses)
	}
	if err := runlog.Append(cfg.Logs.Dir, []runlog.Entry{entry}); err != nil {
		slog.Warn("failed to write run log", "error", err)
	}

	if runErr != nil {
		return fmt.Errorf("reconciliation failed: %w", runErr)
	}

	fmt.Fprintf(out, "Reconciled %d months (run %s)\n", len(res.Rows), res.RunID)
	fmt.Fprintf(out, "Expenses %s, savings %s of income\n",
		report.FormatPercent(res.Metrics.ExpensePct), report.FormatPercent(res.Metrics.SavingsPct))
	if cfg.Report.Path != "" {
		fmt.Fprintf(out, "Report written to %s\n", cfg.Report.Path)
	}

	if printReport {
		rendered, err := report.Render(res.Markdown, cfg.Report.Style, cfg.Report.Width)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
	}
	return nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgerrecon/internal/config"
	"github.com/cleared-dev/ledgerrecon/internal/filter"
	"github.com/cleared-dev/ledgerrecon/internal/runlog"
)

func newFilterCommand() *cobra.Command {
	var cfgPath, input, output, minIncome, minSavings string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep rows whose income and savings exceed the thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Filter.Input = input
			}
			if flags.Changed("output") {
				cfg.Filter.Output = output
			}
			if flags.Changed("min-income") {
				cfg.Filter.MinIncome = minIncome
			}
			if flags.Changed("min-savings") {
				cfg.Filter.MinSavings = minSavings
			}

			return runFilter(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", config.FileName, "path to "+config.FileName)
	cmd.Flags().StringVar(&input, "input", "", "CSV file to filter")
	cmd.Flags().StringVar(&output, "output", "", "where to write the kept rows")
	cmd.Flags().StringVar(&minIncome, "min-income", "", "income must be greater than this")
	cmd.Flags().StringVar(&minSavings, "min-savings", "", "savings must be greater than this")

	return cmd
}

func runFilter(ctx context.Context, out io.Writer, cfg *config.Config) error {
	th, err := cfg.Thresholds()
	if err != nil {
		return err
	}

	outcome := filter.Run(ctx, filter.Options{
		Input:      cfg.Filter.Input,
		Output:     cfg.Filter.Output,
		Thresholds: th,
	}, slog.Default())

	entry := runlog.Entry{Timestamp: time.Now(), Command: "filter", Outcome: runlog.OutcomeOK}
	if outcome.OK() {
		entry.Rows = len(outcome.Table.Rows)
		entry.Details = fmt.Sprintf("kept %d of %d rows", len(outcome.Table.Rows), outcome.Loaded)
	} else {
		entry.Outcome = runlog.OutcomeFailed
		entry.Details = outcome.Err.Error()
	}
	if err := runlog.Append(cfg.Logs.Dir, []runlog.Entry{entry}); err != nil {
		slog.Warn("failed to write run log", "error", err)
	}

	if !outcome.OK() {
		return fmt.Errorf("filter failed: %w", outcome.Err)
	}

	fmt.Fprintf(out, "Kept %d of %d rows, written to %s\n", len(outcome.Table.Rows), outcome.Loaded, cfg.Filter.Output)
	return nil
}

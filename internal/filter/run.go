package filter

import (
	"context"
	"log/slog"

	"github.com/cleared-dev/ledgerrecon/internal/tabular"
)

// Options configures one filter run.
type Options struct {
	Input      string
	Output     string
	Thresholds Thresholds
}

// Outcome is the result of Run. Table is nil when any stage failed; Err then
// holds the failure, wrapping ErrLoad, ErrFilter or ErrSave.
type Outcome struct {
	Table  *tabular.Table
	Loaded int // source rows
	Err    error
}

// OK reports whether every stage succeeded.
func (o Outcome) OK() bool { return o.Err == nil && o.Table != nil }

// Run loads, filters and saves. Stage failures are logged and reported in the
// Outcome; Run never returns an error of its own.
func Run(ctx context.Context, opts Options, logger *slog.Logger) Outcome {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "filter")

	tbl, err := Load(opts.Input)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load data", "input", opts.Input, "error", err)
		return Outcome{Err: err}
	}
	logger.InfoContext(ctx, "data loaded", "input", opts.Input, "rows", len(tbl.Rows))

	kept, err := Apply(tbl, opts.Thresholds)
	if err != nil {
		logger.ErrorContext(ctx, "failed to filter data", "error", err)
		return Outcome{Loaded: len(tbl.Rows), Err: err}
	}
	logger.InfoContext(ctx, "data filtered",
		"kept", len(kept.Rows),
		"min_income", opts.Thresholds.MinIncome.String(),
		"min_savings", opts.Thresholds.MinSavings.String(),
	)

	if err := Save(kept, opts.Output); err != nil {
		logger.ErrorContext(ctx, "failed to save data", "output", opts.Output, "error", err)
		return Outcome{Loaded: len(tbl.Rows), Err: err}
	}
	logger.InfoContext(ctx, "filtered data saved", "output", opts.Output)

	return Outcome{Table: kept, Loaded: len(tbl.Rows)}
}

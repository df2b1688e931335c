// Package pipeline runs a full reconciliation: load both series, normalize,
// join, validate, persist, summarize and report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cleared-dev/ledgerrecon/internal/importer"
	"github.com/cleared-dev/ledgerrecon/internal/model"
	"github.com/cleared-dev/ledgerrecon/internal/normalize"
	"github.com/cleared-dev/ledgerrecon/internal/reconcile"
	"github.com/cleared-dev/ledgerrecon/internal/report"
	"github.com/cleared-dev/ledgerrecon/internal/store"
	"github.com/cleared-dev/ledgerrecon/internal/summary"
)

// Config holds every input of a run. Nothing is read from package state.
type Config struct {
	IncomePath   string
	ExpensesPath string
	Storage      store.Config
	ReportPath   string // empty skips writing the report file
	Currency     string
	HostLabel    string
}

// Deps are the collaborators of a run. Zero values get defaults.
type Deps struct {
	Registry *importer.Registry
	// OpenSink is called only once validation has passed.
	OpenSink func(ctx context.Context, cfg store.Config, logger *slog.Logger) (store.Sink, error)
	NewRunID func() string
	Logger   *slog.Logger
}

// Result is a successful run.
type Result struct {
	RunID             string
	Rows              []model.ReconciledRow
	UnmatchedIncome   int
	UnmatchedExpenses int
	Metrics           model.SummaryMetrics
	Report            *report.Report
	Markdown          string
}

func (d *Deps) withDefaults() {
	if d.Registry == nil {
		d.Registry = importer.DefaultRegistry()
	}
	if d.OpenSink == nil {
		d.OpenSink = store.Open
	}
	if d.NewRunID == nil {
		d.NewRunID = uuid.NewString
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
}

// Run executes one reconciliation. Validation failures are returned unchanged
// (check with errors.Is against reconcile.ErrEmptyOrNonPositiveIncome and
// reconcile.ErrExpensesExceedIncome) and nothing is persisted.
func Run(ctx context.Context, cfg Config, deps Deps) (*Result, error) {
	deps.withDefaults()
	logger := deps.Logger.With("component", "pipeline")

	income, err := loadSeries(ctx, deps.Registry, cfg.IncomePath, importer.ColumnIncome, logger)
	if err != nil {
		return nil, fmt.Errorf("loading income: %w", err)
	}
	expenses, err := loadSeries(ctx, deps.Registry, cfg.ExpensesPath, importer.ColumnExpenses, logger)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	joined := reconcile.Join(income, expenses)
	logger.DebugContext(ctx, "series joined",
		"rows", len(joined.Rows),
		"unmatched_income", joined.UnmatchedIncome,
		"unmatched_expenses", joined.UnmatchedExpenses,
	)

	if err := reconcile.Validate(joined.Rows); err != nil {
		logger.ErrorContext(ctx, "ledger rejected", "error", err)
		return nil, err
	}

	runID := deps.NewRunID()
	if err := persist(ctx, cfg, deps, joined.Rows, runID); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "ledger saved", "rows", len(joined.Rows), "table", tableName(cfg.Storage), "run_id", runID)

	metrics, err := summary.Compute(joined.Rows)
	if err != nil {
		return nil, fmt.Errorf("computing summary: %w", err)
	}

	rep := report.Build(metrics, joined.Rows, report.Options{
		Host:              cfg.HostLabel,
		Currency:          cfg.Currency,
		RunID:             runID,
		UnmatchedIncome:   joined.UnmatchedIncome,
		UnmatchedExpenses: joined.UnmatchedExpenses,
	})
	md, err := report.Markdown(rep)
	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}
	if cfg.ReportPath != "" {
		if err := writeReport(cfg.ReportPath, md); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "report written", "path", cfg.ReportPath)
	}

	return &Result{
		RunID:             runID,
		Rows:              joined.Rows,
		UnmatchedIncome:   joined.UnmatchedIncome,
		UnmatchedExpenses: joined.UnmatchedExpenses,
		Metrics:           metrics,
		Report:            rep,
		Markdown:          md,
	}, nil
}

// loadSeries reads and normalizes one series. Invalid months produce a single
// warning for the batch.
func loadSeries(ctx context.Context, reg *importer.Registry, path, column string, logger *slog.Logger) ([]model.MonthlyRecord, error) {
	raw, err := reg.ReadFile(path, column)
	if err != nil {
		return nil, err
	}

	series, rep := normalize.Series(raw)
	if rep.AnyInvalid() {
		values := make([]string, len(rep.Invalid))
		for i, idx := range rep.Invalid {
			values[i] = series[idx].Raw
		}
		logger.WarnContext(ctx, "invalid month values found",
			"series", column,
			"count", len(rep.Invalid),
			"indices", rep.Invalid,
			"values", values,
		)
	}
	logger.DebugContext(ctx, "series loaded", "series", column, "path", path, "records", rep.Total)
	return series, nil
}

func persist(ctx context.Context, cfg Config, deps Deps, rows []model.ReconciledRow, runID string) (err error) {
	sink, err := deps.OpenSink(ctx, cfg.Storage, deps.Logger)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing storage: %w", cerr))
		}
	}()

	if err := sink.Replace(ctx, rows, cfg.HostLabel, runID); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

func writeReport(path, md string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func tableName(cfg store.Config) string {
	if cfg.Table == "" {
		return store.DefaultTable
	}
	return cfg.Table
}

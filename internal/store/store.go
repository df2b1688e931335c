// Package store persists the reconciled ledger. Every write replaces the whole
// table; there is no append and no schema migration.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// DefaultTable is the table written when none is configured.
const DefaultTable = "FinanceData"

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Sink receives the final ledger of a run.
type Sink interface {
	// Replace drops and recreates the table, then inserts rows in order.
	// label is stored verbatim on every row.
	Replace(ctx context.Context, rows []model.ReconciledRow, label, runID string) error
	Close() error
}

// Config selects and configures a sink.
type Config struct {
	Driver string
	Path   string // sqlite database file
	DSN    string // postgres connection string
	Table  string
}

// Open returns the sink for cfg.Driver.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if !tableName.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid table name %q", cfg.Table)
	}

	switch cfg.Driver {
	case DriverSQLite, "":
		return NewSQLite(cfg.Path, cfg.Table, logger)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.DSN, cfg.Table, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Row is one persisted ledger row as stored.
type Row struct {
	Month    string
	Income   string
	Expenses string
	Savings  string
	Host     string
	RunID    string
}

func toRow(r model.ReconciledRow, label, runID string) Row {
	return Row{
		Month:    r.Month.String(),
		Income:   r.Income.String(),
		Expenses: r.Expenses.String(),
		Savings:  r.Savings.String(),
		Host:     label,
		RunID:    runID,
	}
}

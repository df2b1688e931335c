// Package filter selects the rows of a flat income/savings table that clear
// income and savings thresholds and exports them to a new file.
package filter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/tabular"
)

// Stage failures. Every error returned by Load, Apply and Save wraps one of them.
var (
	ErrLoad   = errors.New("load failure")
	ErrFilter = errors.New("filter failure")
	ErrSave   = errors.New("save failure")
)

// Column names the predicate reads.
const (
	ColumnIncome  = "Income"
	ColumnSavings = "Savings"
)

// Thresholds are the strict lower bounds a row must exceed to be kept.
type Thresholds struct {
	MinIncome  decimal.Decimal
	MinSavings decimal.Decimal
}

// DefaultThresholds keeps rows with income above 7000 and savings above 400.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinIncome:  decimal.NewFromInt(7000),
		MinSavings: decimal.NewFromInt(400),
	}
}

// ParseThresholds parses decimal threshold strings.
func ParseThresholds(minIncome, minSavings string) (Thresholds, error) {
	in, err := decimal.NewFromString(strings.TrimSpace(minIncome))
	if err != nil {
		return Thresholds{}, fmt.Errorf("parsing min income %q: %w", minIncome, err)
	}
	sv, err := decimal.NewFromString(strings.TrimSpace(minSavings))
	if err != nil {
		return Thresholds{}, fmt.Errorf("parsing min savings %q: %w", minSavings, err)
	}
	return Thresholds{MinIncome: in, MinSavings: sv}, nil
}

// Load reads the source table.
func Load(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrLoad, path, err)
	}
	defer f.Close()

	tbl, err := tabular.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return tbl, nil
}

// Apply returns the rows whose Income and Savings are both strictly above the
// thresholds. Other columns pass through unchanged. Rows with a blank Income or
// Savings cell are dropped; any other non-numeric cell is an error.
func Apply(tbl *tabular.Table, th Thresholds) (*tabular.Table, error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: no table", ErrFilter)
	}
	incCol, ok := tbl.Column(ColumnIncome)
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrFilter, ColumnIncome)
	}
	savCol, ok := tbl.Column(ColumnSavings)
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrFilter, ColumnSavings)
	}

	kept := [][]string{}
	for i, row := range tbl.Rows {
		// A blank cell has no value to compare, so the row cannot pass.
		if strings.TrimSpace(row[incCol]) == "" || strings.TrimSpace(row[savCol]) == "" {
			continue
		}
		income, err := decimal.NewFromString(strings.TrimSpace(row[incCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: parsing %s %q: %w", ErrFilter, i+2, ColumnIncome, row[incCol], err)
		}
		savings, err := decimal.NewFromString(strings.TrimSpace(row[savCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: parsing %s %q: %w", ErrFilter, i+2, ColumnSavings, row[savCol], err)
		}
		if income.GreaterThan(th.MinIncome) && savings.GreaterThan(th.MinSavings) {
			kept = append(kept, row)
		}
	}
	return tbl.WithRows(kept), nil
}

// Save writes tbl to path, creating parent directories.
func Save(tbl *tabular.Table, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %w", ErrSave, dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrSave, path, err)
	}
	if err := tabular.Write(f, tbl); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrSave, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrSave, path, err)
	}
	return nil
}

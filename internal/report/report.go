// Package report turns the ledger summary into a markdown report: a
// two-slice expense/savings proportion and the month-ordered savings trend.
package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/date"
	"github.com/cleared-dev/ledgerrecon/internal/model"
	"github.com/cleared-dev/ledgerrecon/internal/summary"
)

// Point is one month of the savings series.
type Point struct {
	Month   date.Date
	Savings decimal.Decimal
}

// Options carries the pass-through metadata of a run.
type Options struct {
	Host              string // opaque label shown in titles
	Currency          string // ISO 4217 code used to format amounts
	RunID             string
	UnmatchedIncome   int
	UnmatchedExpenses int
}

// Report is everything the chart collaborator needs.
type Report struct {
	Options
	Slices []summary.Slice
	Series []Point // ascending by month
	Totals summary.Totals
}

// Build assembles a report. rows is not modified; the series is sorted on a copy.
func Build(m model.SummaryMetrics, rows []model.ReconciledRow, opts Options) *Report {
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}

	series := make([]Point, len(rows))
	for i, r := range rows {
		series[i] = Point{Month: r.Month, Savings: r.Savings}
	}
	slices.SortStableFunc(series, func(a, b Point) int { return a.Month.Compare(b.Month) })

	return &Report{
		Options: opts,
		Slices:  summary.Slices(m),
		Series:  series,
		Totals:  summary.Sum(rows),
	}
}

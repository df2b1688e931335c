package model

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/date"
)

// RawRecord is one source row before date normalization.
type RawRecord struct {
	Month string // untrimmed text from the Month column
	Value decimal.Decimal
}

// MonthlyRecord is one row of a normalized series.
// Invalid records stay in the series but never join.
type MonthlyRecord struct {
	Month date.Date
	Valid bool
	Raw   string
	Value decimal.Decimal
}

// ReconciledRow is one month present in both series.
type ReconciledRow struct {
	Month    date.Date
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal // Income - Expenses, may be negative
}

// SummaryMetrics holds the expense and savings shares of total income, in percent.
type SummaryMetrics struct {
	ExpensePct decimal.Decimal
	SavingsPct decimal.Decimal
}

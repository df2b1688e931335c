// Package summary derives the reporting ratios of a validated ledger.
package summary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/model"
	"github.com/cleared-dev/ledgerrecon/internal/reconcile"
)

// Slice labels, in display order.
const (
	LabelExpenses = "Expenses"
	LabelSavings  = "Savings"
)

var hundred = decimal.NewFromInt(100)

// Slice is one labelled share of a two-slice proportion chart.
type Slice struct {
	Label   string
	Percent decimal.Decimal
}

// Totals are the column sums of a ledger.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
	Rows     int
}

// Sum adds up every column of rows.
func Sum(rows []model.ReconciledRow) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero, Savings: decimal.Zero, Rows: len(rows)}
	for _, r := range rows {
		t.Income = t.Income.Add(r.Income)
		t.Expenses = t.Expenses.Add(r.Expenses)
		t.Savings = t.Savings.Add(r.Savings)
	}
	return t
}

// Compute returns the expense and savings shares of total income. Both are
// floored at zero. Non-positive total income is rejected.
func Compute(rows []model.ReconciledRow) (model.SummaryMetrics, error) {
	income, expenses := reconcile.Totals(rows)
	if !income.IsPositive() {
		return model.SummaryMetrics{}, fmt.Errorf("computing summary: %w", reconcile.ErrEmptyOrNonPositiveIncome)
	}

	expensePct := expenses.Div(income).Mul(hundred)
	savingsPct := hundred.Sub(expensePct)
	return model.SummaryMetrics{
		ExpensePct: decimal.Max(decimal.Zero, expensePct),
		SavingsPct: decimal.Max(decimal.Zero, savingsPct),
	}, nil
}

// Slices pairs the metrics with their fixed labels.
func Slices(m model.SummaryMetrics) []Slice {
	return []Slice{
		{Label: LabelExpenses, Percent: m.ExpensePct},
		{Label: LabelSavings, Percent: m.SavingsPct},
	}
}

// Package reconcile joins the income and expense series into one ledger and
// enforces the ledger's aggregate invariants.
package reconcile

import (
	"github.com/cleared-dev/ledgerrecon/internal/date"
	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// Result is the output of Join.
type Result struct {
	Rows              []model.ReconciledRow
	UnmatchedIncome   int // income records with no expense on the same date, invalid ones included
	UnmatchedExpenses int
}

// Join inner-joins income and expenses on exact date equality and derives
// savings for every matched pair. A date repeated in either series yields
// every combination, ordered by income row then expense row. Invalid records
// never match.
func Join(income, expenses []model.MonthlyRecord) Result {
	byMonth := make(map[date.Date][]int)
	for i, e := range expenses {
		if e.Valid {
			byMonth[e.Month] = append(byMonth[e.Month], i)
		}
	}

	var res Result
	matched := make([]bool, len(expenses))
	for _, in := range income {
		if !in.Valid {
			res.UnmatchedIncome++
			continue
		}
		idxs := byMonth[in.Month]
		if len(idxs) == 0 {
			res.UnmatchedIncome++
			continue
		}
		for _, j := range idxs {
			matched[j] = true
			ex := expenses[j]
			res.Rows = append(res.Rows, model.ReconciledRow{
				Month:    in.Month,
				Income:   in.Value,
				Expenses: ex.Value,
				Savings:  in.Value.Sub(ex.Value),
			})
		}
	}

	for _, m := range matched {
		if !m {
			res.UnmatchedExpenses++
		}
	}
	return res
}

package reconcile

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

var (
	// ErrEmptyOrNonPositiveIncome means total income over the ledger is <= 0.
	ErrEmptyOrNonPositiveIncome = errors.New("total income must be greater than zero")
	// ErrExpensesExceedIncome means total expenses are larger than total income.
	ErrExpensesExceedIncome = errors.New("total expenses cannot exceed total income")
)

// ValidationError describes a failed ledger invariant with the totals that broke it.
type ValidationError struct {
	Err      error // one of the sentinels above
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Rows     int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (income %s, expenses %s over %d rows)",
		e.Err, e.Income.StringFixed(2), e.Expenses.StringFixed(2), e.Rows)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Totals sums income and expenses over rows.
func Totals(rows []model.ReconciledRow) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, r := range rows {
		income = income.Add(r.Income)
		expenses = expenses.Add(r.Expenses)
	}
	return income, expenses
}

// Validate checks the aggregate invariants of a reconciled ledger. Only the
// sums are checked; a single month with negative savings is fine.
func Validate(rows []model.ReconciledRow) error {
	income, expenses := Totals(rows)

	if !income.IsPositive() {
		return &ValidationError{Err: ErrEmptyOrNonPositiveIncome, Income: income, Expenses: expenses, Rows: len(rows)}
	}
	if expenses.GreaterThan(income) {
		return &ValidationError{Err: ErrExpensesExceedIncome, Income: income, Expenses: expenses, Rows: len(rows)}
	}
	return nil
}

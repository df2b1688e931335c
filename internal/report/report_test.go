package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgerrecon/internal/date"
	"github.com/cleared-dev/ledgerrecon/internal/model"
	"github.com/cleared-dev/ledgerrecon/internal/summary"
)

func row(month, income, expenses string) model.ReconciledRow {
	in, ex := decimal.RequireFromString(income), decimal.RequireFromString(expenses)
	return model.ReconciledRow{Month: date.MustParse(month), Income: in, Expenses: ex, Savings: in.Sub(ex)}
}

func metrics(expense, savings int64) model.SummaryMetrics {
	return model.SummaryMetrics{ExpensePct: decimal.NewFromInt(expense), SavingsPct: decimal.NewFromInt(savings)}
}

func TestBuild_SortsSeriesOnCopy(t *testing.T) {
	rows := []model.ReconciledRow{
		row("2024-03-01", "1000", "100"),
		row("2024-01-01", "1000", "200"),
		row("2024-02-01", "1000", "300"),
	}

	r := Build(metrics(20, 80), rows, Options{Host: "box"})
	require.Len(t, r.Series, 3)
	assert.Equal(t, "2024-01-01", r.Series[0].Month.String())
	assert.Equal(t, "2024-02-01", r.Series[1].Month.String())
	assert.Equal(t, "2024-03-01", r.Series[2].Month.String())
	assert.Equal(t, "800", r.Series[0].Savings.String())

	assert.Equal(t, "2024-03-01", rows[0].Month.String(), "input order is untouched")
	assert.Equal(t, DefaultCurrency, r.Currency)
	assert.Equal(t, 3, r.Totals.Rows)
	require.Len(t, r.Slices, 2)
	assert.Equal(t, summary.LabelExpenses, r.Slices[0].Label)
}

func TestMarkdown(t *testing.T) {
	rows := []model.ReconciledRow{
		row("2024-02-01", "1000", "1200"),
		row("2024-01-01", "2000", "400"),
	}
	r := Build(metrics(53, 47), rows, Options{
		Host:            "ledger-host",
		Currency:        "USD",
		RunID:           "run-42",
		UnmatchedIncome: 2,
	})

	md, err := Markdown(r)
	require.NoError(t, err)

	assert.Contains(t, md, "# Finance Report (ledger-host)")
	assert.Contains(t, md, "## Expense vs Savings Distribution")
	assert.Contains(t, md, "| Expenses | 53.0% |")
	assert.Contains(t, md, "| Savings | 47.0% |")
	assert.Contains(t, md, "## Monthly Savings Trends")
	assert.Contains(t, md, "$1,600.00")
	assert.Contains(t, md, "200.00")
	assert.Contains(t, md, "Unmatched records dropped: 2 income, 0 expenses.")
	assert.Contains(t, md, "_Run run-42_")
	assert.Contains(t, md, "over 2 reconciled rows.")

	assert.Less(t, strings.Index(md, "2024-01-01"), strings.Index(md, "2024-02-01"), "series is month ordered")
}

func TestMarkdown_DuplicateMonthsCountRows(t *testing.T) {
	rows := []model.ReconciledRow{
		row("2024-01-01", "1000", "100"),
		row("2024-01-01", "1000", "200"),
	}
	md, err := Markdown(Build(metrics(15, 85), rows, Options{}))
	require.NoError(t, err)
	assert.Contains(t, md, "over 2 reconciled rows.")
	assert.NotContains(t, md, "months.")
}

func TestMarkdown_NoOptionalSections(t *testing.T) {
	r := Build(metrics(0, 100), []model.ReconciledRow{row("2024-01-01", "10", "0")}, Options{})
	md, err := Markdown(r)
	require.NoError(t, err)
	assert.Contains(t, md, "# Finance Report\n")
	assert.NotContains(t, md, "Unmatched")
	assert.NotContains(t, md, "_Run")
}

func TestBar(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	assert.Equal(t, "##########", bar(decimal.NewFromInt(50), hundred))
	assert.Equal(t, "####################", bar(hundred, hundred))
	assert.Equal(t, "", bar(decimal.Zero, hundred))
	assert.Equal(t, "", bar(decimal.NewFromInt(5), decimal.Zero))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatAmount(decimal.RequireFromString("1234.565"), "USD"))
	assert.Equal(t, "$0.00", FormatAmount(decimal.Zero, "USD"))
	assert.Contains(t, FormatAmount(decimal.RequireFromString("-3000"), "USD"), "3,000.00")
	assert.Equal(t, "12.50 XXQ", FormatAmount(decimal.RequireFromString("12.5"), "XXQ"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "37.5%", FormatPercent(decimal.RequireFromString("37.5")))
	assert.Equal(t, "33.3%", FormatPercent(decimal.RequireFromString("33.333333")))
}

func TestKnownCurrency(t *testing.T) {
	assert.True(t, KnownCurrency("USD"))
	assert.True(t, KnownCurrency("EUR"))
	assert.False(t, KnownCurrency("XXQ"))
}

func TestRender(t *testing.T) {
	r := Build(metrics(40, 60), []model.ReconciledRow{row("2024-01-01", "10", "4")}, Options{})
	md, err := Markdown(r)
	require.NoError(t, err)

	out, err := Render(md, "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Monthly Savings Trends")
	assert.Contains(t, out, "60.0%")
}


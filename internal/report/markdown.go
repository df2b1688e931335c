package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

const barWidth = 20

const reportTemplate = `# Finance Report{{ with .Host }} ({{ . }}){{ end }}

## Expense vs Savings Distribution

| Category | Share | |
|---|---:|---|
{{- range .Slices }}
| {{ .Label }} | {{ pct .Percent }} | {{ shareBar .Percent }} |
{{- end }}

Total income {{ amount .Totals.Income }}, expenses {{ amount .Totals.Expenses }}, savings {{ amount .Totals.Savings }} over {{ .Totals.Rows }} reconciled rows.

## Monthly Savings Trends

| Month | Savings ({{ .Currency }}) | |
|---|---:|---|
{{- range .Series }}
| {{ .Month }} | {{ amount .Savings }} | {{ trendBar .Savings }} |
{{- end }}
{{ if or .UnmatchedIncome .UnmatchedExpenses }}
Unmatched records dropped: {{ .UnmatchedIncome }} income, {{ .UnmatchedExpenses }} expenses.
{{ end }}
{{- with .RunID }}
_Run {{ . }}_
{{ end -}}
`

// Markdown renders the report as markdown.
func Markdown(r *Report) (string, error) {
	maxAbs := decimal.Zero
	for _, p := range r.Series {
		maxAbs = decimal.Max(maxAbs, p.Savings.Abs())
	}

	funcs := template.FuncMap{
		"pct":    FormatPercent,
		"amount": func(v decimal.Decimal) string { return FormatAmount(v, r.Currency) },
		"shareBar": func(p decimal.Decimal) string {
			return bar(p, decimal.NewFromInt(100))
		},
		"trendBar": func(v decimal.Decimal) string {
			if v.IsNegative() {
				return "-" + bar(v.Abs(), maxAbs)
			}
			return bar(v, maxAbs)
		},
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing report template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("executing report template: %w", err)
	}
	return buf.String(), nil
}

// bar draws v as a share of full, barWidth characters at most.
func bar(v, full decimal.Decimal) string {
	if !full.IsPositive() || !v.IsPositive() {
		return ""
	}
	n := int(v.Div(full).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	n = min(max(n, 0), barWidth)
	return strings.Repeat("#", n)
}

// Render styles markdown for a terminal. style is a glamour style name
// ("dark", "light", "notty", ...); empty picks one from the terminal.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

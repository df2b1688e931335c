package report

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// KnownCurrency reports whether code is an ISO 4217 currency go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// FormatAmount formats v in the currency's minor units, rounding half away from zero.
func FormatAmount(v decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", v.StringFixed(2), code)
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}

// FormatPercent formats p with one decimal, e.g. "37.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

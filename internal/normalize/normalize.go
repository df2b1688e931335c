// Package normalize turns raw month strings into canonical dates.
package normalize

import (
	"github.com/cleared-dev/ledgerrecon/internal/date"
	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// Report summarizes one normalized batch.
type Report struct {
	Total   int
	Invalid []int // 0-based indices of records whose month did not parse
}

// AnyInvalid reports whether at least one record in the batch has an invalid month.
func (r Report) AnyInvalid() bool { return len(r.Invalid) > 0 }

// Series parses every record's month. Records that fail to parse are kept with
// Valid=false. The report is built in a single pass after the batch completes.
func Series(raw []model.RawRecord) ([]model.MonthlyRecord, Report) {
	out := make([]model.MonthlyRecord, len(raw))
	for i, r := range raw {
		rec := model.MonthlyRecord{Raw: r.Month, Value: r.Value}
		if d, err := date.Parse(r.Month); err == nil {
			rec.Month = d
			rec.Valid = true
		}
		out[i] = rec
	}

	rep := Report{Total: len(out)}
	for i, rec := range out {
		if !rec.Valid {
			rep.Invalid = append(rep.Invalid, i)
		}
	}
	return out, rep
}

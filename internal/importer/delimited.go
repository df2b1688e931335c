package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// DelimitedParser parses single-character delimited text, e.g. comma separated
// values or the space separated expense export.
type DelimitedParser struct {
	Name  string
	Comma rune
}

// Format returns the parser name.
func (p *DelimitedParser) Format() string { return p.Name }

// Parse reads the table and extracts the Month and valueColumn columns.
func (p *DelimitedParser) Parse(r io.Reader, valueColumn string) ([]model.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.Comma
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.Name, err)
	}
	return fromRows(records, valueColumn)
}

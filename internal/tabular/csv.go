// Package tabular reads and writes header-first CSV tables without a fixed schema.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a header row plus data rows, every row as wide as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// ErrNoHeader is returned when the input has no rows at all.
var ErrNoHeader = errors.New("missing header row")

// Read reads a CSV table. The first row is the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// Write writes the header followed by every row.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Column returns the index of the named column, ignoring case, surrounding
// space and a leading byte order mark.
func (t *Table) Column(name string) (int, bool) {
	want := strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), want) {
			return i, true
		}
	}
	return -1, false
}

// WithRows returns a table sharing t's header with the given rows.
func (t *Table) WithRows(rows [][]string) *Table {
	return &Table{Header: t.Header, Rows: rows}
}

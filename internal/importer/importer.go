// Package importer reads the income and expense series from delimited text
// and spreadsheet files.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// Column names shared by both series.
const (
	ColumnMonth    = "Month"
	ColumnIncome   = "Income"
	ColumnExpenses = "Expenses"
)

// Parser converts a source file into raw series records.
type Parser interface {
	Parse(r io.Reader, valueColumn string) ([]model.RawRecord, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DelimitedParser{Name: "csv", Comma: ','})
	r.Register(&DelimitedParser{Name: "txt", Comma: ' '})
	r.Register(&XLSXParser{})
	return r
}

// FormatFor returns the format name for a file path, from its extension.
func FormatFor(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ReadFile opens path and parses it with the parser registered for its extension.
func (r *Registry) ReadFile(path, valueColumn string) ([]model.RawRecord, error) {
	format := FormatFor(path)
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("no parser for %q files (%s)", format, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	recs, err := p.Parse(f, valueColumn)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return recs, nil
}

// fromRows turns a header-first grid into raw records. Rows shorter than the
// header are padded; blank rows are skipped.
func fromRows(rows [][]string, valueColumn string) ([]model.RawRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	monthCol := columnIndex(header, ColumnMonth)
	if monthCol < 0 {
		return nil, fmt.Errorf("missing %q column", ColumnMonth)
	}
	valueCol := columnIndex(header, valueColumn)
	if valueCol < 0 {
		return nil, fmt.Errorf("missing %q column", valueColumn)
	}

	var recs []model.RawRecord
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		month := cell(row, monthCol)
		raw := strings.TrimSpace(cell(row, valueCol))
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing %s %q: %w", i+2, valueColumn, raw, err)
		}
		recs = append(recs, model.RawRecord{Month: month, Value: value})
	}
	return recs, nil
}

// byteOrderMark is left on the first header cell by some spreadsheet exports.
const byteOrderMark = "\ufeff"

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark)), name) {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

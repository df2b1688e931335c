package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgerrecon/internal/model"
)

// XLSXParser parses the first worksheet of an Excel workbook.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the first sheet and extracts the Month and valueColumn columns.
// Cells are read as their stored values, so number formats do not leak into amounts.
func (p *XLSXParser) Parse(r io.Reader, valueColumn string) ([]model.RawRecord, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return fromRows(rows, valueColumn)
}

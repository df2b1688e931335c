package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDelimited_CSV(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	recs, err := p.Parse(strings.NewReader("Month,Income\n2024-01-01,1000\n 2024-02-01 ,1200.50\n"), ColumnIncome)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "2024-01-01", recs[0].Month)
	assert.Equal(t, "1000", recs[0].Value.String())
	assert.Equal(t, " 2024-02-01 ", recs[1].Month, "month text is left for the normalizer")
	assert.Equal(t, "1200.5", recs[1].Value.String())
}

func TestDelimited_SpaceSeparated(t *testing.T) {
	p := &DelimitedParser{Name: "txt", Comma: ' '}
	recs, err := p.Parse(strings.NewReader("Month Expenses\n2024-01-01 400\n2024-02-01 4000\n"), ColumnExpenses)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "4000", recs[1].Value.String())
}

func TestDelimited_ByteOrderMark(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	recs, err := p.Parse(strings.NewReader("\ufeffMonth,Income\n2024-01-01,1000\n"), ColumnIncome)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-01-01", recs[0].Month)
}

func TestDelimited_ColumnOrderAndCase(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	recs, err := p.Parse(strings.NewReader("note,INCOME,month\nx,10,2024-01-01\n"), ColumnIncome)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "2024-01-01", recs[0].Month)
	assert.Equal(t, "10", recs[0].Value.String())
}

func TestDelimited_MissingColumn(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	_, err := p.Parse(strings.NewReader("Month,Amount\n2024-01-01,10\n"), ColumnIncome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "Income" column`)

	_, err = p.Parse(strings.NewReader("Date,Income\n2024-01-01,10\n"), ColumnIncome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "Month" column`)
}

func TestDelimited_BadAmount(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	_, err := p.Parse(strings.NewReader("Month,Income\n2024-01-01,10\n2024-02-01,ten\n"), ColumnIncome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), "parsing Income")
}

func TestDelimited_Empty(t *testing.T) {
	p := &DelimitedParser{Name: "csv", Comma: ','}
	recs, err := p.Parse(strings.NewReader(""), ColumnIncome)
	require.NoError(t, err)
	assert.Nil(t, recs)

	recs, err = p.Parse(strings.NewReader("Month,Income\n"), ColumnIncome)
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestXLSX_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Month", "Income"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2024-01-01", 1000}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{" 2024-02-01", "1200.75"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	p := &XLSXParser{}
	recs, err := p.Parse(buf, ColumnIncome)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2024-01-01", recs[0].Month)
	assert.Equal(t, "1000", recs[0].Value.String())
	assert.Equal(t, " 2024-02-01", recs[1].Month)
	assert.Equal(t, "1200.75", recs[1].Value.String())
}

func TestXLSX_FormattedNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Month", "Income"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2024-01-01", 5200.5}))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "B2", "B2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	recs, err := (&XLSXParser{}).Parse(buf, ColumnIncome)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "5200.5", recs[0].Value.String())
}

func TestXLSX_NotAWorkbook(t *testing.T) {
	p := &XLSXParser{}
	_, err := p.Parse(strings.NewReader("Month,Income\n"), ColumnIncome)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, format := range []string{"csv", "txt", "xlsx", "XLSX"} {
		assert.NotNil(t, r.Get(format), format)
	}
	assert.Nil(t, r.Get("json"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&XLSXParser{})
	assert.Panics(t, func() { r.Register(&XLSXParser{}) })
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "xlsx", FormatFor("data/income3.XLSX"))
	assert.Equal(t, "txt", FormatFor("expenses3.txt"))
	assert.Equal(t, "", FormatFor("noext"))
}

func TestReadFile_Testdata(t *testing.T) {
	r := DefaultRegistry()

	income, err := r.ReadFile("../../testdata/income.csv", ColumnIncome)
	require.NoError(t, err)
	assert.Len(t, income, 6)

	expenses, err := r.ReadFile("../../testdata/expenses.txt", ColumnExpenses)
	require.NoError(t, err)
	assert.Len(t, expenses, 5)
	assert.Equal(t, "3100.4", expenses[0].Value.String())
}

func TestReadFile_Errors(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.ReadFile("income.json", ColumnIncome)
	assert.ErrorContains(t, err, "no parser")

	_, err = r.ReadFile(filepath.Join(t.TempDir(), "missing.csv"), ColumnIncome)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

package sheetlite

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Recognized workbook extensions.
const (
	extXLSX = ".xlsx"
	extXLS  = ".xls"
)

// Sheet is one tabular page of a workbook. Columns holds the original header
// labels in source order; Rows holds the data rows, each padded or truncated
// to the header width.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Empty reports whether the sheet has no data rows. A sheet holding only a
// header row is empty.
func (s Sheet) Empty() bool {
	return len(s.Rows) == 0
}

// Workbook is an ordered collection of sheets read from a spreadsheet file.
type Workbook struct {
	Path   string
	Sheets []Sheet
}

// IsWorkbookPath reports whether path carries a recognized spreadsheet
// extension, compared case-insensitively.
func IsWorkbookPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extXLSX, extXLS:
		return true
	}
	return false
}

// ReadWorkbook reads every sheet of the spreadsheet file at path into memory.
// Cell values arrive as the reader's formatted strings.
func ReadWorkbook(path string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extXLSX:
		return readXLSX(path)
	case extXLS:
		return readXLS(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func readXLSX(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		_ = f.Close() // Ignore close error
	}()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, path)
	}

	wb := &Workbook{Path: path, Sheets: make([]Sheet, 0, len(sheetNames))}
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, sheetFromRows(name, rows))
	}
	return wb, nil
}

func readXLS(path string) (*Workbook, error) {
	f, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		_ = closer.Close() // Ignore close error
	}()

	count := f.NumSheets()
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, path)
	}

	wb := &Workbook{Path: path, Sheets: make([]Sheet, 0, count)}
	for i := 0; i < count; i++ {
		sheet := f.GetSheet(i)
		if sheet == nil {
			continue
		}
		wb.Sheets = append(wb.Sheets, sheetFromRows(sheet.Name, xlsSheetRows(sheet)))
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyWorkbook, path)
	}
	return wb, nil
}

// xlsSheetRows materializes a legacy BIFF sheet into raw rows. The header row
// fixes the column width; rows are stored sparsely, so missing ones come back
// as runs of empty cells.
func xlsSheetRows(sheet *xls.WorkSheet) [][]string {
	header := sheet.Row(0)
	if header == nil {
		return nil
	}
	width := header.LastCol()
	if width <= 0 {
		return nil
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		record := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := 0; j < width; j++ {
				record[j] = row.Col(j)
			}
		}
		rows = append(rows, record)
	}
	return rows
}

// sheetFromRows splits raw rows into header labels and data rows, padding
// short rows with empty cells and truncating long ones to the header width.
func sheetFromRows(name string, rows [][]string) Sheet {
	if len(rows) == 0 {
		return Sheet{Name: name}
	}

	columns := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]string, len(columns))
		copy(record, row)
		data = append(data, record)
	}
	return Sheet{Name: name, Columns: columns, Rows: data}
}

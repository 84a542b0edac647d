package sheetlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fixtureSheet describes one sheet of a generated test workbook. Cell values
// keep their Go types so fixtures can hold numbers and booleans, not just
// strings.
type fixtureSheet struct {
	name string
	rows [][]any
}

// writeWorkbook generates an XLSX file at path with the given sheets, in
// order. The first sheet replaces the default Sheet1.
func writeWorkbook(t *testing.T, path string, sheets []fixtureSheet) {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck

	for i, sheet := range sheets {
		if i == 0 {
			if sheet.name != "Sheet1" {
				require.NoError(t, file.SetSheetName("Sheet1", sheet.name))
			}
		} else {
			_, err := file.NewSheet(sheet.name)
			require.NoError(t, err)
		}

		for r, row := range sheet.rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, file.SetCellValue(sheet.name, cell, value))
			}
		}
	}

	require.NoError(t, file.SaveAs(path))
}

func TestReadWorkbook(t *testing.T) {
	t.Parallel()

	t.Run("sheets keep their order, headers, and rows", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "book.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "First", rows: [][]any{{"id", "name"}, {1, "alice"}, {2, "bob"}}},
			{name: "Second", rows: [][]any{{"city"}, {"Berlin"}}},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		require.Len(t, wb.Sheets, 2)
		assert.Equal(t, path, wb.Path)

		first := wb.Sheets[0]
		assert.Equal(t, "First", first.Name)
		assert.Equal(t, []string{"id", "name"}, first.Columns)
		assert.Equal(t, [][]string{{"1", "alice"}, {"2", "bob"}}, first.Rows)
		assert.False(t, first.Empty())

		second := wb.Sheets[1]
		assert.Equal(t, "Second", second.Name)
		assert.Equal(t, [][]string{{"Berlin"}}, second.Rows)
	})

	t.Run("short rows are padded to the header width", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ragged.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "Data", rows: [][]any{{"a", "b", "c"}, {"1"}}},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		require.Len(t, wb.Sheets, 1)
		assert.Equal(t, [][]string{{"1", "", ""}}, wb.Sheets[0].Rows)
	})

	t.Run("long rows are truncated to the header width", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "wide.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "Data", rows: [][]any{{"a"}, {"1", "2", "3"}}},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, wb.Sheets[0].Columns)
		assert.Equal(t, [][]string{{"1"}}, wb.Sheets[0].Rows)
	})

	t.Run("header only sheet is empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "header.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "Data", rows: [][]any{{"id", "name"}}},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		assert.True(t, wb.Sheets[0].Empty())
		assert.Equal(t, []string{"id", "name"}, wb.Sheets[0].Columns)
	})

	t.Run("sheet without cells is empty", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "blank.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "Data", rows: [][]any{{"id"}, {1}}},
			{name: "Untouched", rows: nil},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		require.Len(t, wb.Sheets, 2)
		assert.True(t, wb.Sheets[1].Empty())
		assert.Empty(t, wb.Sheets[1].Columns)
	})

	t.Run("numbers and booleans arrive as formatted strings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "typed.xlsx")
		writeWorkbook(t, path, []fixtureSheet{
			{name: "Data", rows: [][]any{{"n", "f", "b"}, {42, 2.5, true}}},
		})

		wb, err := ReadWorkbook(path)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"42", "2.5", "TRUE"}}, wb.Sheets[0].Rows)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600))

		_, err := ReadWorkbook(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"))
		assert.Error(t, err)
	})

	t.Run("corrupt file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "broken.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o600))

		_, err := ReadWorkbook(path)
		assert.Error(t, err)
	})
}

func TestIsWorkbookPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "xlsx", path: "input/data.xlsx", want: true},
		{name: "xls", path: "input/data.xls", want: true},
		{name: "uppercase extension", path: "DATA.XLSX", want: true},
		{name: "mixed case extension", path: "data.Xls", want: true},
		{name: "csv", path: "data.csv", want: false},
		{name: "no extension", path: "data", want: false},
		{name: "xlsx directory name only", path: "data.xlsx/file.txt", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsWorkbookPath(tt.path))
		})
	}
}

package sheetlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutputDir is where derived destination paths place database files
// when no explicit destination is given.
const DefaultOutputDir = "output"

// databaseExt is the extension of produced database files.
const databaseExt = ".db"

// TableInfo summarizes one table produced by a conversion.
type TableInfo struct {
	// Sheet is the source sheet name
	Sheet string
	// Name is the table name written to the database
	Name string
	// Rows is the number of data rows inserted
	Rows int
	// Columns is the number of columns
	Columns int
}

// Conversion is the result of converting one workbook into a database.
type Conversion struct {
	// Source is the workbook that was read
	Source string
	// Database is the database file that was written
	Database string
	// Tables lists the produced tables in sheet order
	Tables []TableInfo
	// Skipped lists sheets left out for having no data rows
	Skipped []string
}

// Convert converts the workbook at sourcePath into a SQLite database at
// destinationPath. It is equivalent to ConvertContext with
// context.Background().
func Convert(sourcePath, destinationPath string) (*Conversion, error) {
	return ConvertContext(context.Background(), sourcePath, destinationPath)
}

// ConvertContext converts the workbook at sourcePath into a SQLite database.
//
// Every sheet with at least one data row becomes a table; a sheet holding
// only a header row is skipped. Existing tables of the same name are dropped
// and recreated, so converting the same workbook twice leaves one copy of the
// data. In a single-sheet workbook the table is named after the database file
// stem; multi-sheet workbooks derive one table name per sheet, de-duplicated
// with a numeric suffix when two sheets collapse to the same name.
//
// When destinationPath is empty the database is written to
// output/<source stem>.db, creating the directory as needed. Failures are
// returned as a *ConvertError carrying the failure kind. Each sheet is
// written in its own transaction, so a failure mid-workbook leaves the tables
// of earlier sheets committed.
func ConvertContext(ctx context.Context, sourcePath, destinationPath string) (*Conversion, error) {
	wb, err := ReadWorkbook(sourcePath)
	if err != nil {
		return nil, &ConvertError{Source: sourcePath, Kind: FailureSourceUnreadable, Err: err}
	}

	if destinationPath == "" {
		destinationPath = filepath.Join(DefaultOutputDir, databaseStem(sourcePath)+databaseExt)
	}
	if dir := filepath.Dir(destinationPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, &ConvertError{
				Source: sourcePath,
				Kind:   FailureDestinationWrite,
				Err:    fmt.Errorf("failed to create output directory %s: %w", dir, err),
			}
		}
	}

	db, err := openDatabase(ctx, destinationPath)
	if err != nil {
		return nil, &ConvertError{Source: sourcePath, Kind: FailureDestinationWrite, Err: err}
	}
	defer func() {
		_ = db.Close()
	}()

	conv := &Conversion{Source: sourcePath, Database: destinationPath}
	singleSheet := len(wb.Sheets) == 1
	stem := databaseStem(destinationPath)

	taken := make(map[string]bool, len(wb.Sheets))
	for i, sheet := range wb.Sheets {
		if sheet.Empty() || len(sheet.Columns) == 0 {
			conv.Skipped = append(conv.Skipped, sheet.Name)
			continue
		}

		// A single-sheet workbook keeps the database stem verbatim as its
		// table name.
		name := stem
		if !singleSheet {
			name = uniqueName(TableNameForSheet(sheet.Name, i), taken)
		}
		taken[name] = true

		if err := convertSheet(ctx, db, name, sheet); err != nil {
			return nil, &ConvertError{
				Source: sourcePath,
				Kind:   FailureDestinationWrite,
				Err:    fmt.Errorf("sheet %s: %w", sheet.Name, err),
			}
		}
		conv.Tables = append(conv.Tables, TableInfo{
			Sheet:   sheet.Name,
			Name:    name,
			Rows:    len(sheet.Rows),
			Columns: len(sheet.Columns),
		})
	}
	return conv, nil
}

// convertSheet writes one sheet as a table inside its own transaction.
func convertSheet(ctx context.Context, db *sql.DB, name string, sheet Sheet) error {
	identifiers := ColumnIdentifiers(sheet.Columns)
	columns := inferColumnsInfo(identifiers, sheet.Rows)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := replaceTable(ctx, tx, name, columns); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := insertRows(ctx, tx, name, columns, sheet.Rows); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}
	return nil
}

// databaseStem returns the base name of path without its extension.
func databaseStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

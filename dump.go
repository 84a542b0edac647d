package sheetlite

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DumpDatabase exports every table of the database at databasePath into
// outputDir. It is equivalent to DumpDatabaseContext with
// context.Background().
func DumpDatabase(databasePath, outputDir string, opts ...DumpOptions) ([]string, error) {
	return DumpDatabaseContext(context.Background(), databasePath, outputDir, opts...)
}

// DumpDatabaseContext exports every table of the database at databasePath
// into outputDir, one file per table named <table><ext> where the extension
// follows the options' format and compression. Without options tables are
// written as uncompressed CSV. The written paths are returned in table
// order; a database without tables yields ErrNoTables.
func DumpDatabaseContext(ctx context.Context, databasePath, outputDir string, opts ...DumpOptions) ([]string, error) {
	options := NewDumpOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	db, err := openDatabase(ctx, databasePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	tables, err := tableNames(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTables, databasePath)
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	written := make([]string, 0, len(tables))
	for _, table := range tables {
		outputPath := filepath.Join(outputDir, table+options.FileExtension())
		if err := exportTable(ctx, db, table, outputPath, options); err != nil {
			return written, fmt.Errorf("failed to export table %s: %w", table, err)
		}
		written = append(written, outputPath)
	}
	return written, nil
}

// exportTable streams one table through the configured format and
// compression into a new file.
func exportTable(ctx context.Context, db *sql.DB, table, outputPath string, options DumpOptions) error {
	columns, err := tableColumns(ctx, db, table)
	if err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return fmt.Errorf("failed to query table: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	file, err := os.Create(outputPath) //nolint:gosec // path is derived from the output directory
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer, err := newCompressionWriter(file, options.Compression)
	if err != nil {
		_ = file.Close()
		return err
	}

	writeErr := writeTableData(writer, columns, rows, options.Format)
	return errors.Join(writeErr, writer.Close(), file.Close())
}

// writeTableData renders rows in the requested format. NULL values become
// empty fields.
func writeTableData(w io.Writer, columns []tableColumn, rows *sql.Rows, format OutputFormat) error {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if format == OutputFormatLTSV {
		fields := make([]string, len(columns))
		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			for i, name := range names {
				fields[i] = name + ":" + dumpField(values[i])
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
		return rows.Err()
	}

	cw := csv.NewWriter(w)
	if format == OutputFormatTSV {
		cw.Comma = '\t'
	}
	if err := cw.Write(names); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range record {
			record[i] = dumpField(values[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return rows.Err()
}

// dumpField renders a database value as a flat text field, NULL as empty.
func dumpField(v any) string {
	if v == nil {
		return ""
	}
	return renderValue(v)
}

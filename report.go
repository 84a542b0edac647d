package sheetlite

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSampleRows is how many sample rows a report shows per table.
const DefaultSampleRows = 3

// Report section separator widths.
const (
	bannerWidth    = 80
	tableSepWidth  = 50
	sampleSepWidth = 30
)

// Report writes the text report for the database file at databasePath and
// returns the report path. It is equivalent to ReportContext with
// context.Background().
func Report(databasePath string) (string, error) {
	return ReportContext(context.Background(), databasePath)
}

// ReportContext writes the text report for the database file at databasePath.
//
// The report lists every table with its row and column counts, the typed
// column list, and up to DefaultSampleRows sample rows, followed by the total
// record count. It is written next to the database as <stem>_report.txt and
// the path is returned. A database without tables yields ErrNoTables and no
// file.
func ReportContext(ctx context.Context, databasePath string) (string, error) {
	return reportDatabase(ctx, databasePath, DefaultSampleRows)
}

// reportDatabase renders and writes the report for one database file.
func reportDatabase(ctx context.Context, databasePath string, sampleRows int) (string, error) {
	content, err := buildReport(ctx, databasePath, sampleRows, time.Now())
	if err != nil {
		return "", err
	}

	path := reportPath(databasePath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// reportPath derives the report file path for a database file.
func reportPath(databasePath string) string {
	return strings.TrimSuffix(databasePath, databaseExt) + "_report.txt"
}

// buildReport renders the full report content. Apart from the generation
// timestamp the output is a pure function of the database contents.
func buildReport(ctx context.Context, databasePath string, sampleRows int, now time.Time) (string, error) {
	info, err := os.Stat(databasePath)
	if err != nil {
		return "", fmt.Errorf("failed to stat database %s: %w", databasePath, err)
	}

	db, err := openDatabase(ctx, databasePath)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = db.Close()
	}()

	tables, err := tableNames(ctx, db)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoTables, databasePath)
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	banner := strings.Repeat("=", bannerWidth)

	line(banner)
	line("SQLite Database Report")
	line(banner)
	line("Generated: %s", now.Format("2006-01-02 15:04:05"))
	line("Database: %s", databasePath)
	line("File size: %s bytes", groupDigits(info.Size()))
	line("Tables: %d", len(tables))
	line("")

	var totalRows int64
	for _, table := range tables {
		columns, err := tableColumns(ctx, db, table)
		if err != nil {
			return "", err
		}
		rowCount, err := tableRowCount(ctx, db, table)
		if err != nil {
			return "", err
		}
		totalRows += rowCount

		line("Table: %s", table)
		line(strings.Repeat("-", tableSepWidth))
		line("Rows: %s", groupDigits(rowCount))
		line("Columns: %d", len(columns))
		line("")
		line("Column details:")
		for i, col := range columns {
			line("   %d. %-30s (%s)", i+1, col.Name, col.Type)
		}
		line("")

		if rowCount == 0 {
			continue
		}

		samples, err := sampleTableRows(ctx, db, table, sampleRows)
		if err != nil {
			return "", err
		}
		line("Sample rows (first %d):", sampleRows)
		line(strings.Repeat("-", sampleSepWidth))
		for i, row := range samples {
			line("Row %d:", i+1)
			for j, col := range columns {
				line("  %s: %s", col.Name, renderValue(row[j]))
			}
			line("")
		}
		if rowCount > int64(sampleRows) {
			line("... %s more rows", groupDigits(rowCount-int64(sampleRows)))
			line("")
		}
	}

	line(banner)
	line("Total records: %s", groupDigits(totalRows))
	line(banner)

	return b.String(), nil
}

// renderValue formats a sampled cell for the report. NULL renders as the
// literal NULL.
func renderValue(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case []byte:
		return string(value)
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

// groupDigits renders a non-negative count with comma separators every three
// digits.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

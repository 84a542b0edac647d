package sheetlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// openDatabase opens the SQLite database file at path, creating it when it
// does not exist yet.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return db, nil
}

// quoteIdent quotes an identifier for interpolation into SQL text.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// replaceTable drops any existing table of the same name and creates it fresh
// with the given typed columns.
func replaceTable(ctx context.Context, tx *sql.Tx, name string, columns []columnInfo) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}

	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(col.Name), col.Type.sqlType()))
	}
	query := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	return nil
}

// insertRows inserts all data rows through one prepared statement, binding
// each cell according to its column's inferred type.
func insertRows(ctx context.Context, tx *sql.Tx, name string, columns []columnInfo, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(name), strings.Join(placeholders, ", "))

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert for table %s: %w", name, err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	values := make([]any, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			values[i] = bindValue(col.Type, row[i])
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("failed to insert row into table %s: %w", name, err)
		}
	}
	return nil
}

// tableNames returns the user tables of db in sqlite_master order.
func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return names, nil
}

// tableColumn describes one column as reported by PRAGMA table_info.
type tableColumn struct {
	Name string
	Type string
}

// tableColumns returns the ordered column list of a table.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]tableColumn, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of table %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var columns []tableColumn
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of table %s: %w", table, err)
		}
		columns = append(columns, tableColumn{Name: name, Type: typ})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of table %s: %w", table, err)
	}
	return columns, nil
}

// tableRowCount returns the number of rows stored in a table.
func tableRowCount(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM " + quoteIdent(table)
	if err := db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows of table %s: %w", table, err)
	}
	return count, nil
}

// sampleTableRows returns up to limit rows of a table in storage order, with
// values in the driver's native Go types.
func sampleTableRows(ctx context.Context, db *sql.DB, table string, limit int) ([][]any, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdent(table), limit)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sample table %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to sample table %s: %w", table, err)
	}

	var samples [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to sample table %s: %w", table, err)
		}
		samples = append(samples, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to sample table %s: %w", table, err)
	}
	return samples, nil
}

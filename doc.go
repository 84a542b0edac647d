// Package sheetlite converts spreadsheet workbooks into SQLite database
// files and writes deterministic text reports describing what was produced.
//
// Each workbook (.xlsx or .xls) becomes one database file. Every sheet with
// at least one data row is written as a table; running a conversion again
// replaces those tables rather than appending. A single-sheet workbook
// produces a table named after the database file itself, while multi-sheet
// workbooks derive one table name per sheet from the sheet names. Column
// identifiers come from the header row, and storage types are inferred from
// the data before the schema is declared: TEXT, INTEGER, REAL, booleans as
// INTEGER 0/1, timestamps kept as TEXT.
//
// # Converting a workbook
//
//	conv, err := sheetlite.Convert("input/sales.xlsx", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(conv.Database) // output/sales.db
//
// # Reporting on a database
//
//	path, err := sheetlite.Report("output/sales.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(path) // output/sales_report.txt
//
// # Running a directory
//
// The batch runner converts every workbook in the configured input directory
// and then reports on every database in the output directory:
//
//	summary, err := sheetlite.NewBatch(sheetlite.DefaultConfig()).Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d/%d converted\n", summary.Succeeded(), len(summary.Results))
//
// Tables can also be exported back out as CSV, TSV, or LTSV files with
// optional compression via DumpDatabase, and an input directory can be kept
// converted continuously with a Watcher.
package sheetlite

package sheetlite

import "errors"

// Sentinel errors returned by the conversion and reporting pipelines.
var (
	// ErrUnsupportedFormat indicates a source file whose extension is not a
	// recognized spreadsheet format
	ErrUnsupportedFormat = errors.New("sheetlite: unsupported workbook format")

	// ErrEmptyWorkbook indicates a workbook that contains no sheets at all
	ErrEmptyWorkbook = errors.New("sheetlite: workbook contains no sheets")

	// ErrNoTables indicates no tables found in a database file
	ErrNoTables = errors.New("sheetlite: no tables found in database")

	// ErrInputDirNotFound indicates the batch input directory does not exist
	ErrInputDirNotFound = errors.New("sheetlite: input directory does not exist")

	// ErrBzip2WriteUnsupported indicates an export requested bzip2 output,
	// which the compression stack can only read
	ErrBzip2WriteUnsupported = errors.New("sheetlite: bzip2 compression is not supported for writing")
)

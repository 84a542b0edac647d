package sheetlite

import (
	"errors"
	"fmt"
)

// FailureKind classifies why processing a file failed.
type FailureKind int

const (
	// FailureNone marks a successful result
	FailureNone FailureKind = iota
	// FailureSourceUnreadable indicates the workbook could not be opened or parsed
	FailureSourceUnreadable
	// FailureDestinationWrite indicates the destination directory or database rejected a write
	FailureDestinationWrite
	// FailureReport indicates a produced database could not be reported on
	FailureReport
)

// String returns a human-readable name for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureSourceUnreadable:
		return "source unreadable"
	case FailureDestinationWrite:
		return "destination write failed"
	case FailureReport:
		return "report failed"
	default:
		return "unknown"
	}
}

// ConvertError describes the failed conversion of a single workbook.
type ConvertError struct {
	// Source is the workbook path that failed
	Source string
	// Kind classifies the failure
	Kind FailureKind
	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("convert %s: %s: %v", e.Source, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *ConvertError) Unwrap() error {
	return e.Err
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	// Source is the workbook path
	Source string
	// Database is the produced database path, empty on failure
	Database string
	// Kind is FailureNone on success
	Kind FailureKind
	// Message carries the failure detail, empty on success
	Message string
}

// Success reports whether the file was processed without error.
func (r FileResult) Success() bool {
	return r.Kind == FailureNone
}

// successResult builds the result for a completed conversion.
func successResult(source, database string) FileResult {
	return FileResult{Source: source, Database: database}
}

// failureResult builds a result from a processing error, keeping the failure
// kind when the error is a ConvertError.
func failureResult(source string, err error) FileResult {
	var convErr *ConvertError
	if errors.As(err, &convErr) {
		return FileResult{Source: source, Kind: convErr.Kind, Message: convErr.Err.Error()}
	}
	return FileResult{Source: source, Kind: FailureSourceUnreadable, Message: err.Error()}
}

// Summary aggregates the outcome of one batch run.
type Summary struct {
	// Results holds one entry per input workbook, in scan order.
	Results []FileResult
	// Reports holds the report files written after conversion.
	Reports []string
	// ReportSkipped holds databases left unreported for containing no tables.
	ReportSkipped []string
	// ReportFailures holds databases whose report generation failed.
	ReportFailures []FileResult
}

// Succeeded returns the number of successfully converted workbooks.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Success() {
			n++
		}
	}
	return n
}

// Failed returns the number of workbooks that failed to convert.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

package sheetlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Batch converts every workbook in the configured input directory and then
// writes a report for every database in the output directory.
type Batch struct {
	config   Config
	onStart  func(index, total int, source string)
	onResult func(result FileResult)
}

// NewBatch creates a batch runner for the given configuration.
func NewBatch(cfg Config) *Batch {
	return &Batch{config: cfg}
}

// OnFileStart registers a hook invoked before each workbook converts, with
// its 0-based position and the total file count. It returns the receiver for
// chaining.
func (b *Batch) OnFileStart(fn func(index, total int, source string)) *Batch {
	b.onStart = fn
	return b
}

// OnFileResult registers a hook invoked with each workbook's result. It
// returns the receiver for chaining.
func (b *Batch) OnFileResult(fn func(result FileResult)) *Batch {
	b.onResult = fn
	return b
}

// Run executes the batch.
//
// The input directory is scanned non-recursively for workbook files; a
// missing input directory yields ErrInputDirNotFound. Each workbook is
// converted in scan order, one failure never stopping the rest. When at
// least one conversion succeeded, a report is then written for every
// database file in the output directory, including databases left there by
// earlier runs.
func (b *Batch) Run(ctx context.Context) (*Summary, error) {
	cfg := b.config
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sources, err := listWorkbooks(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if len(sources) == 0 {
		return summary, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}

	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if b.onStart != nil {
			b.onStart(i, len(sources), source)
		}

		destination := filepath.Join(cfg.OutputDir, databaseStem(source)+databaseExt)
		conv, err := ConvertContext(ctx, source, destination)

		var result FileResult
		if err != nil {
			result = failureResult(source, err)
		} else {
			result = successResult(source, conv.Database)
		}
		summary.Results = append(summary.Results, result)

		if b.onResult != nil {
			b.onResult(result)
		}
	}

	if summary.Succeeded() == 0 {
		return summary, nil
	}

	databases, err := listDatabases(cfg.OutputDir)
	if err != nil {
		return summary, err
	}
	for _, database := range databases {
		report, err := reportDatabase(ctx, database, cfg.SampleRows)
		if err != nil {
			if errors.Is(err, ErrNoTables) {
				summary.ReportSkipped = append(summary.ReportSkipped, database)
				continue
			}
			summary.ReportFailures = append(summary.ReportFailures, FileResult{
				Source:  database,
				Kind:    FailureReport,
				Message: err.Error(),
			})
			continue
		}
		summary.Reports = append(summary.Reports, report)
	}

	return summary, nil
}

// listWorkbooks returns the workbook files directly inside dir, in directory
// listing order.
func listWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbookPath(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// listDatabases returns the database files directly inside dir.
func listDatabases(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), databaseExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

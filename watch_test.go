package sheetlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher(t *testing.T) {
	t.Parallel()

	t.Run("missing input directory", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			InputDir:  filepath.Join(t.TempDir(), "absent"),
			OutputDir: t.TempDir(),
		}
		_, err := NewWatcher(cfg)
		assert.ErrorIs(t, err, ErrInputDirNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := NewWatcher(Config{})
		assert.Error(t, err)
	})
}

func TestWatcherRun(t *testing.T) {
	t.Parallel()

	t.Run("converts a workbook dropped into the input directory", func(t *testing.T) {
		t.Parallel()

		inputDir := t.TempDir()
		outputDir := filepath.Join(t.TempDir(), "out")
		watcher, done, results, cancel := startWatcher(t, inputDir, outputDir)
		defer watcher.Close() //nolint:errcheck // test cleanup

		writeWorkbook(t, filepath.Join(inputDir, "drop.xlsx"), []fixtureSheet{
			{
				name: "Sheet1",
				rows: [][]any{
					{"id", "name"},
					{1, "alice"},
					{2, "bob"},
				},
			},
		})

		result := awaitResult(t, results)
		assert.True(t, result.Success())
		assert.Equal(t, filepath.Join(inputDir, "drop.xlsx"), result.Source)
		assert.Equal(t, filepath.Join(outputDir, "drop.db"), result.Database)
		assert.FileExists(t, filepath.Join(outputDir, "drop.db"))
		assert.FileExists(t, filepath.Join(outputDir, "drop_report.txt"))

		report, err := os.ReadFile(filepath.Join(outputDir, "drop_report.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(report), "Table: drop")

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("reports a corrupt workbook as a failure", func(t *testing.T) {
		t.Parallel()

		inputDir := t.TempDir()
		outputDir := filepath.Join(t.TempDir(), "out")
		watcher, done, results, cancel := startWatcher(t, inputDir, outputDir)
		defer watcher.Close() //nolint:errcheck // test cleanup

		require.NoError(t, os.WriteFile(filepath.Join(inputDir, "bad.xlsx"), []byte("not a workbook"), 0o600))

		result := awaitResult(t, results)
		assert.False(t, result.Success())
		assert.Equal(t, filepath.Join(inputDir, "bad.xlsx"), result.Source)
		assert.Equal(t, FailureSourceUnreadable, result.Kind)

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("ignores files that are not workbooks", func(t *testing.T) {
		t.Parallel()

		inputDir := t.TempDir()
		outputDir := filepath.Join(t.TempDir(), "out")
		watcher, done, results, cancel := startWatcher(t, inputDir, outputDir)
		defer watcher.Close() //nolint:errcheck // test cleanup

		require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("plain text"), 0o600))

		select {
		case result := <-results:
			t.Fatalf("unexpected result for %s", result.Source)
		case <-time.After(300 * time.Millisecond):
		}

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}

// startWatcher runs a watcher with a short debounce over inputDir and returns
// its run error channel, result channel, and cancel function.
func startWatcher(t *testing.T, inputDir, outputDir string) (*Watcher, chan error, chan FileResult, context.CancelFunc) {
	t.Helper()

	watcher, err := NewWatcher(Config{
		InputDir:  inputDir,
		OutputDir: outputDir,
	})
	require.NoError(t, err)
	watcher.debounce = 50 * time.Millisecond

	results := make(chan FileResult, 8)
	watcher.OnResult = func(result FileResult) {
		results <- result
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	return watcher, done, results, cancel
}

// awaitResult waits for one conversion result with a generous timeout so slow
// filesystems do not flake the test.
func awaitResult(t *testing.T, results chan FileResult) FileResult {
	t.Helper()

	select {
	case result := <-results:
		return result
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for a conversion result")
		return FileResult{}
	}
}

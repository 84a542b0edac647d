package sheetlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits after the last write event
// on a file before converting it. Spreadsheet writers save in several bursts.
const defaultDebounce = 500 * time.Millisecond

// Watcher converts workbooks as they appear in the input directory and
// writes the report for each produced database.
type Watcher struct {
	// OnResult, when set, receives the outcome of every triggered
	// conversion.
	OnResult func(result FileResult)
	// OnError, when set, receives filesystem watcher errors.
	OnError func(err error)

	config   Config
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewWatcher creates a watcher over the configured input directory, which
// must exist.
func NewWatcher(cfg Config) (*Watcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.InputDir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, cfg.InputDir)
		}
		return nil, fmt.Errorf("failed to stat input directory %s: %w", cfg.InputDir, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsWatcher.Add(cfg.InputDir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", cfg.InputDir, err)
	}

	return &Watcher{
		config:   cfg,
		watcher:  fsWatcher,
		debounce: defaultDebounce,
		inFlight: make(map[string]bool),
	}, nil
}

// Run processes filesystem events until ctx is cancelled, converting each
// workbook once its events settle.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.config.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.config.OutputDir, err)
	}

	var (
		timerMu sync.Mutex
		timers  = make(map[string]*time.Timer)
	)
	defer func() {
		timerMu.Lock()
		for _, timer := range timers {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !IsWorkbookPath(event.Name) {
				continue
			}

			path := event.Name
			timerMu.Lock()
			if timer, exists := timers[path]; exists {
				timer.Stop()
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				w.handle(ctx, path)
			})
			timerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// handle converts one workbook and reports its database, guarding against a
// second trigger for the same path while the first still runs.
func (w *Watcher) handle(ctx context.Context, path string) {
	w.mu.Lock()
	if w.inFlight[path] {
		w.mu.Unlock()
		return
	}
	w.inFlight[path] = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		delete(w.inFlight, path)
		w.mu.Unlock()
	}()

	destination := filepath.Join(w.config.OutputDir, databaseStem(path)+databaseExt)
	conv, err := ConvertContext(ctx, path, destination)

	var result FileResult
	if err != nil {
		result = failureResult(path, err)
	} else {
		result = successResult(path, conv.Database)
		if _, err := reportDatabase(ctx, conv.Database, w.config.SampleRows); err != nil && !errors.Is(err, ErrNoTables) {
			result = FileResult{
				Source:   path,
				Database: conv.Database,
				Kind:     FailureReport,
				Message:  err.Error(),
			}
		}
	}

	if w.OnResult != nil {
		w.OnResult(result)
	}
}

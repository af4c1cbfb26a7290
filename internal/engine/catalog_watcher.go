package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"hirescope/internal/errors"
)

// CatalogWatcher watches a skill catalog file and hot-swaps the matcher's
// catalog when the file changes. A failed reload keeps the previous catalog.
type CatalogWatcher struct {
	mu sync.RWMutex

	path    string
	matcher *Matcher

	lastModTime time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	// onReload, when set, is invoked after every reload attempt with the
	// reload error (nil on success). Used for reload metrics.
	onReload func(error)
	logger   *errors.Logger

	running bool
}

// NewCatalogWatcher creates a watcher for the given catalog file. The watcher
// does nothing until Start is called.
func NewCatalogWatcher(path string, matcher *Matcher, debounceDelay time.Duration, onReload func(error), logger *errors.Logger) *CatalogWatcher {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}

	return &CatalogWatcher{
		path:          path,
		matcher:       matcher,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1), // Buffered to prevent blocking
		onReload:      onReload,
		logger:        logger,
	}
}

// Start begins watching the catalog file for changes
func (w *CatalogWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("catalog watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = watcher

	if stat, err := os.Stat(w.path); err == nil {
		w.lastModTime = stat.ModTime()
	}

	if err := w.fsWatcher.Add(w.path); err != nil {
		if !os.IsNotExist(err) {
			w.cleanupWatcher()
			return fmt.Errorf("failed to watch catalog file %s: %w", w.path, err)
		}
		if w.logger != nil {
			w.logger.Info("Catalog file missing, watching directory for it to appear", "file", w.path)
		}
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		w.cleanupWatcher()
		return fmt.Errorf("failed to watch catalog directory %s: %w", dir, err)
	}

	w.running = true
	go w.watchLoop()

	if w.logger != nil {
		w.logger.Info("Skill catalog file watcher started",
			"file", w.path,
			"debounce_delay", w.debounceDelay)
	}
	return nil
}

// Stop stops the catalog file watcher
func (w *CatalogWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	if w.fsWatcher != nil {
		if err := w.fsWatcher.Close(); err != nil {
			if w.logger != nil {
				w.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	w.running = false

	if w.logger != nil {
		w.logger.Info("Skill catalog file watcher stopped")
	}
	return nil
}

// IsRunning returns whether the watcher is currently running
func (w *CatalogWatcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *CatalogWatcher) cleanupWatcher() {
	if w.fsWatcher != nil {
		if closeErr := w.fsWatcher.Close(); closeErr != nil && w.logger != nil {
			w.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// watchLoop is the main event loop for file watching
func (w *CatalogWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldProcessEvent(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.LogError(err, "Catalog file watcher error")
			}

		case <-w.reloadChan:
			// Debounced reload trigger
			if w.hasFileChanged() {
				w.reload()
			}

		case <-w.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (w *CatalogWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != w.path && filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasFileChanged checks if the catalog file was modified since last check
func (w *CatalogWatcher) hasFileChanged() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	stat, err := os.Stat(w.path)
	if err != nil {
		// Deletion is not a reload trigger; the active catalog stays valid
		return false
	}

	if w.lastModTime.IsZero() || stat.ModTime().After(w.lastModTime) {
		w.lastModTime = stat.ModTime()
		return true
	}
	return false
}

// reload loads the catalog file and swaps it into the matcher. On failure the
// matcher keeps the catalog it had.
func (w *CatalogWatcher) reload() {
	catalog, err := LoadCatalogFile(w.path)
	if err != nil {
		if w.logger != nil {
			w.logger.LogError(err, "Skill catalog reload failed, keeping current catalog", "file", w.path)
		}
		if w.onReload != nil {
			w.onReload(err)
		}
		return
	}

	w.matcher.SetCatalog(catalog)
	if w.logger != nil {
		w.logger.Info("Skill catalog reloaded", "file", w.path, "terms", catalog.Len())
	}
	if w.onReload != nil {
		w.onReload(nil)
	}
}

// scheduleReload schedules a debounced reload
func (w *CatalogWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

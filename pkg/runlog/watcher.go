package runlog

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatcherConfig configures a retention watcher.
type WatcherConfig struct {
	// Dir is the log directory to watch.
	Dir string

	// Module scopes the retention pass to module_*.log when set;
	// otherwise every .log file in Dir is considered.
	Module string

	// Keep is the retention bound passed to each purge.
	Keep int

	// Debounce delays the purge after a burst of file creations.
	// Default 500ms.
	Debounce time.Duration

	// Logger receives watcher activity.
	Logger zerolog.Logger

	// Metrics, when set, observes each pass.
	Metrics *Metrics

	// OnPurge, when set, receives each pass's results.
	OnPurge func([]Result)
}

// Watcher triggers a debounced retention pass whenever new log files
// appear in the watched directory. Other processes writing to the same
// directory are expected; the purge's tolerant deletion policy absorbs
// the races.
type Watcher struct {
	cfg     WatcherConfig
	watcher *fsnotify.Watcher
	sel     Selector

	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a retention watcher for cfg.Dir.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("watch directory is required")
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	sel := GlobalSelector()
	if cfg.Module != "" {
		sel = ScopedSelector(cfg.Module)
	}

	return &Watcher{
		cfg:     cfg,
		watcher: fsw,
		sel:     sel,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.cfg.Dir, err)
	}

	go w.eventLoop()

	w.cfg.Logger.Info().
		Str("dir", w.cfg.Dir).
		Int("keep", w.cfg.Keep).
		Msg("retention watcher started")
	return nil
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
		w.cfg.Logger.Info().Msg("retention watcher stopped")
	})
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.cfg.Logger.Warn().Err(err).Msg("watcher error")
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) || !w.sel(filepath.Base(event.Name)) {
		return
	}

	w.cfg.Logger.Debug().Str("path", event.Name).Msg("log file created")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Debounce, w.purge)
}

func (w *Watcher) purge() {
	select {
	case <-w.done:
		return
	default:
	}

	results := Purge(w.cfg.Dir, w.sel, w.cfg.Keep)
	if w.cfg.Metrics != nil {
		w.cfg.Metrics.ObservePurge(results)
	}
	if deleted := Deleted(results); len(deleted) > 0 {
		w.cfg.Logger.Info().
			Int("count", len(deleted)).
			Strs("paths", deleted).
			Msg("purged old logs")
	}
	if w.cfg.OnPurge != nil {
		w.cfg.OnPurge(results)
	}
}

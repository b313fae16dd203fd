package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// RotateInterval selects the wall-clock boundary at which the file sink
// starts a new physical file.
type RotateInterval string

const (
	// RotateDaily rolls the file at local midnight.
	RotateDaily RotateInterval = "midnight"
	// RotateHourly rolls the file at the top of each hour.
	RotateHourly RotateInterval = "hour"
	// RotateMinutely rolls the file every minute. Intended for tests.
	RotateMinutely RotateInterval = "minute"
)

// next returns the first boundary strictly after t.
func (ri RotateInterval) next(t time.Time) time.Time {
	switch ri {
	case RotateHourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
	case RotateMinutely:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()).Add(time.Minute)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
	}
}

// stamp formats the suffix appended to a rotated segment.
func (ri RotateInterval) stamp(t time.Time) string {
	switch ri {
	case RotateHourly:
		return t.Format("2006-01-02_15")
	case RotateMinutely:
		return t.Format("2006-01-02_15-04")
	default:
		return t.Format("2006-01-02")
	}
}

// timedWriter appends to a single log file and starts a new one whenever a
// write crosses the configured time boundary. The closed segment keeps the
// base name plus a boundary stamp, and segments beyond backups are pruned
// oldest first.
type timedWriter struct {
	mu       sync.Mutex
	path     string
	interval RotateInterval
	backups  int
	clock    func() time.Time

	file     *os.File
	opened   time.Time
	rotateAt time.Time
}

func newTimedWriter(path string, interval RotateInterval, backups int, clock func() time.Time) (*timedWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	now := clock()
	return &timedWriter{
		path:     path,
		interval: interval,
		backups:  backups,
		clock:    clock,
		file:     file,
		opened:   now,
		rotateAt: interval.next(now),
	}, nil
}

// Write appends to the current segment, rolling over first when the clock
// has crossed the boundary.
func (w *timedWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if now := w.clock(); !now.Before(w.rotateAt) {
		if err := w.rotate(now); err != nil {
			return 0, err
		}
	}
	return w.file.Write(p)
}

// Close closes the current segment.
func (w *timedWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// rotate closes the current segment, renames it with the stamp of the
// interval it covered, and reopens a fresh file at the base path.
func (w *timedWriter) rotate(now time.Time) error {
	if err := w.file.Close(); err != nil {
		return err
	}

	rotatedName := fmt.Sprintf("%s.%s", w.path, w.interval.stamp(w.opened))
	if err := os.Rename(w.path, rotatedName); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	w.file = file
	w.opened = now
	w.rotateAt = w.interval.next(now)

	w.prune()
	return nil
}

// prune removes rotated segments of this base file beyond the configured
// backup count, oldest first. Removal failures are ignored; the next
// rotation tries again.
func (w *timedWriter) prune() {
	if w.backups <= 0 {
		return
	}

	segments, err := filepath.Glob(w.path + ".*")
	if err != nil || len(segments) <= w.backups {
		return
	}

	// Stamps are fixed-width, so lexical order is chronological.
	sort.Strings(segments)
	for _, segment := range segments[:len(segments)-w.backups] {
		os.Remove(segment)
	}
}

package runlog

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// stampLayout is the second-granularity timestamp embedded in session
// filenames: module_2024-01-02_15-04-05.log.
const stampLayout = "2006-01-02_15-04-05"

var stampPattern = regexp.MustCompile(`_(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2})\.log$`)

// Selector decides which files in a log directory belong to a retention pass.
type Selector func(name string) bool

// GlobalSelector matches every .log file in the directory.
func GlobalSelector() Selector {
	return func(name string) bool {
		return strings.HasSuffix(name, ".log")
	}
}

// ScopedSelector matches only files created for the given module name,
// i.e. module_*.log.
func ScopedSelector(module string) Selector {
	prefix := module + "_"
	return func(name string) bool {
		return strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".log")
	}
}

// LogFile describes one file considered by a retention pass.
type LogFile struct {
	Path    string
	SortKey time.Time
	// Stamped is true when SortKey was parsed from the filename rather
	// than taken from the file's modification time.
	Stamped bool
}

// Result records the outcome for a single deletion candidate. A candidate
// that could not be removed carries the failure in Reason and is left on
// disk; the pass itself never aborts.
type Result struct {
	Path    string
	SortKey time.Time
	Deleted bool
	Reason  error
}

// parseStamp extracts the trailing _YYYY-MM-DD_HH-MM-SS.log timestamp from a
// filename. Returns false when the pattern is absent or not a valid
// calendar time.
func parseStamp(name string) (time.Time, bool) {
	m := stampPattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(stampLayout, m[1], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ListLogs returns the files in dir matched by sel, oldest first. The sort
// key is the filename timestamp when present, otherwise the modification
// time, otherwise the epoch so that an unreadable file sorts oldest. Ties
// are broken by lexical filename order. A missing or unreadable directory
// yields an empty list.
func ListLogs(dir string, sel Selector) []LogFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []LogFile
	for _, entry := range entries {
		if entry.IsDir() || !sel(entry.Name()) {
			continue
		}

		lf := LogFile{Path: filepath.Join(dir, entry.Name())}
		if key, ok := parseStamp(entry.Name()); ok {
			lf.SortKey = key
			lf.Stamped = true
		} else if info, err := entry.Info(); err == nil {
			lf.SortKey = info.ModTime()
		} else {
			lf.SortKey = time.Unix(0, 0)
		}
		files = append(files, lf)
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].SortKey.Equal(files[j].SortKey) {
			return files[i].SortKey.Before(files[j].SortKey)
		}
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})
	return files
}

// Plan returns the paths a retention pass over dir would delete, oldest
// first, without removing anything.
func Plan(dir string, sel Selector, keep int) []string {
	var paths []string
	for _, lf := range candidates(dir, sel, keep) {
		paths = append(paths, lf.Path)
	}
	return paths
}

// Purge deletes the oldest matched files beyond keep and reports a Result
// per candidate, oldest first. Individual deletion failures (permissions,
// a concurrent remove) are recorded and skipped; they never abort the
// pass. No file outside the selector's match set is ever touched, and at
// most max(0, matched-keep) files are removed.
func Purge(dir string, sel Selector, keep int) []Result {
	cands := candidates(dir, sel, keep)
	if len(cands) == 0 {
		return nil
	}

	results := make([]Result, 0, len(cands))
	for _, lf := range cands {
		res := Result{Path: lf.Path, SortKey: lf.SortKey}
		if err := os.Remove(lf.Path); err != nil {
			res.Reason = err
		} else {
			res.Deleted = true
		}
		results = append(results, res)
	}
	return results
}

// Deleted filters a pass's results down to the paths actually removed, in
// deletion order.
func Deleted(results []Result) []string {
	var paths []string
	for _, res := range results {
		if res.Deleted {
			paths = append(paths, res.Path)
		}
	}
	return paths
}

func candidates(dir string, sel Selector, keep int) []LogFile {
	if keep < 0 {
		keep = 0
	}
	files := ListLogs(dir, sel)
	excess := len(files) - keep
	if excess <= 0 {
		return nil
	}
	return files[:excess]
}

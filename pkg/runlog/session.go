package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is one process run's logging destination: a timestamped file
// plus a console sink, bound to a module name. Exactly one file is created
// per distinct module name per process; Open is idempotent for a name.
type Session struct {
	module    string
	dir       string
	path      string
	createdAt time.Time
	runID     string
	keep      int
	scope     Scope
	quiet     map[string]struct{}

	logger zerolog.Logger
	writer *timedWriter
}

// Open returns the session for opts.Module from the default registry,
// creating it on first call. See Registry.Open.
func Open(opts Options) (*Session, error) {
	return defaultRegistry.Open(opts)
}

// Open creates the session for opts.Module, or returns the existing one.
//
// On first call per module it creates the log directory if missing,
// opens dir/module_<YYYY-MM-DD_HH-MM-SS>.log behind a midnight-rotating
// file sink, attaches a console sink clamped to info, and runs a
// retention pass. Subsequent calls for the same module skip sink
// creation but still run the retention pass before returning the
// existing handle.
//
// An uncreatable directory or unopenable log file is returned as an
// error; there is no silent fallback sink.
func (r *Registry) Open(opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if opts.Module == "" {
		return nil, fmt.Errorf("module name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[opts.Module]; ok {
		s.purgeAndLog()
		return s, nil
	}

	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	createdAt := opts.Clock()
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", opts.Module, createdAt.Format(stampLayout)))

	// Touch the file so this run's log is visible to the retention pass
	// below. Failure here is advisory; the sink open decides.
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		f.Close()
	}

	writer, err := newTimedWriter(path, opts.RotateEvery, opts.BackupCount, opts.Clock)
	if err != nil {
		return nil, err
	}

	fileSink := lineWriter(writer)
	consoleSink := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: lineWriter(opts.Console)},
		Level:  zerolog.InfoLevel,
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(fileSink, consoleSink)).
		Level(opts.Level).
		With().
		Timestamp().
		Str(moduleField, opts.Module).
		Logger()

	quiet := make(map[string]struct{}, len(opts.Quiet))
	for _, name := range opts.Quiet {
		quiet[name] = struct{}{}
	}

	s := &Session{
		module:    opts.Module,
		dir:       opts.Dir,
		path:      path,
		createdAt: createdAt,
		runID:     uuid.New().String()[:8],
		keep:      opts.Keep,
		scope:     opts.Scope,
		quiet:     quiet,
		logger:    logger,
		writer:    writer,
	}
	r.sessions[opts.Module] = s

	s.purgeAndLog()
	s.logger.Debug().
		Str("path", path).
		Str("run_id", s.runID).
		Msg("logger initialized")

	return s, nil
}

// Logger returns the session's logger.
func (s *Session) Logger() *zerolog.Logger {
	return &s.logger
}

// Component returns a child logger whose lines carry name in the module
// segment. Components on the quiet denylist are clamped to WARN.
func (s *Session) Component(name string) zerolog.Logger {
	child := s.logger.With().Str(moduleField, name).Logger()
	if _, noisy := s.quiet[name]; noisy {
		child = child.Level(zerolog.WarnLevel)
	}
	return child
}

// Purge runs one retention pass over the session's directory using its
// configured scope and keep count.
func (s *Session) Purge() []Result {
	return Purge(s.dir, s.selector(), s.keep)
}

// Path returns the session's log file path.
func (s *Session) Path() string { return s.path }

// Module returns the session's module name.
func (s *Session) Module() string { return s.module }

// Keep returns the resolved retention keep count. A zero in Options
// resolves to the default, so this is the value retention actually uses.
func (s *Session) Keep() int { return s.keep }

// CreatedAt returns the timestamp embedded in the session filename.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// RunID returns the short identifier logged at session start.
func (s *Session) RunID() string { return s.runID }

// Close flushes and closes the file sink. The registry entry survives so
// a later Open for the same module stays idempotent.
func (s *Session) Close() error {
	return s.writer.Close()
}

func (s *Session) selector() Selector {
	if s.scope == ScopeGlobal {
		return GlobalSelector()
	}
	return ScopedSelector(s.module)
}

func (s *Session) purgeAndLog() {
	results := s.Purge()
	deleted := Deleted(results)
	if len(deleted) > 0 {
		s.logger.Debug().
			Int("count", len(deleted)).
			Strs("paths", deleted).
			Msg("purged old logs")
	}
	for _, res := range results {
		if !res.Deleted {
			s.logger.Debug().
				Str("path", res.Path).
				AnErr("reason", res.Reason).
				Msg("skipped log deletion")
		}
	}
}

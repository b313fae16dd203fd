package runlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Scope selects which files a session's retention pass considers.
type Scope string

const (
	// ScopeGlobal purges across every .log file in the directory.
	ScopeGlobal Scope = "global"
	// ScopeScoped purges only this module's module_*.log files.
	ScopeScoped Scope = "scoped"
)

// DefaultQuiet lists component names whose loggers are clamped to WARN.
// These sources emit per-event chatter that drowns out the run log.
var DefaultQuiet = []string{"fsnotify", "cron", "http"}

// Options configures a log session. Module is required; everything else
// has a default.
type Options struct {
	// Module groups this session's files: module_<timestamp>.log.
	Module string

	// Dir is the log directory, created if missing. Default "logs".
	Dir string

	// Level is the file sink's minimum severity. The zero value is
	// debug, the most verbose. The console sink never goes below info.
	Level zerolog.Level

	// RotateEvery is the file sink's rotation boundary. Default local
	// midnight.
	RotateEvery RotateInterval

	// BackupCount bounds the rotated segments kept per base file. Zero
	// means the default of 7; the bound cannot be disabled here.
	BackupCount int

	// Keep bounds the session files kept by the retention pass. Zero
	// means the default of 10; a session always retains at least its
	// own file, so use Purge directly to delete everything.
	Keep int

	// Scope selects the retention selector. Default ScopeScoped.
	Scope Scope

	// Quiet overrides DefaultQuiet when non-nil.
	Quiet []string

	// Console receives the console sink. Default os.Stderr.
	Console io.Writer

	// Clock overrides time.Now. Intended for tests.
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "logs"
	}
	if o.RotateEvery == "" {
		o.RotateEvery = RotateDaily
	}
	if o.BackupCount == 0 {
		o.BackupCount = 7
	}
	if o.Keep == 0 {
		o.Keep = 10
	}
	if o.Scope == "" {
		o.Scope = ScopeScoped
	}
	if o.Quiet == nil {
		o.Quiet = DefaultQuiet
	}
	if o.Console == nil {
		o.Console = os.Stderr
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

package config

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/runlogd/runlog/internal/scheduler"
	"github.com/runlogd/runlog/pkg/runlog"
)

// Config represents the main runlog configuration.
type Config struct {
	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Watch
	Watch WatchConfig `json:"watch" mapstructure:"watch"`

	// Schedule
	Schedule ScheduleConfig `json:"schedule" mapstructure:"schedule"`

	// Metrics
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics"`
}

// LoggingConfig holds session and retention settings. A zero keep or
// backup_count means the session defaults (10 and 7); retention cannot be
// disabled here.
type LoggingConfig struct {
	Dir         string   `json:"dir" mapstructure:"dir"`
	Level       string   `json:"level" mapstructure:"level"`
	RotateEvery string   `json:"rotate_every" mapstructure:"rotate_every"` // midnight, hour, minute
	BackupCount int      `json:"backup_count" mapstructure:"backup_count"`
	Keep        int      `json:"keep" mapstructure:"keep"`
	Scope       string   `json:"scope" mapstructure:"scope"` // global, scoped
	Quiet       []string `json:"quiet" mapstructure:"quiet"`
}

// WatchConfig holds retention watcher settings.
type WatchConfig struct {
	Enabled    bool  `json:"enabled" mapstructure:"enabled"`
	DebounceMs int64 `json:"debounce_ms" mapstructure:"debounce_ms"`
}

// ScheduleConfig holds periodic retention settings.
type ScheduleConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Kind    string `json:"kind" mapstructure:"kind"` // every, cron
	EveryMs int64  `json:"every_ms" mapstructure:"every_ms"`
	Expr    string `json:"expr" mapstructure:"expr"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Listen  string `json:"listen" mapstructure:"listen"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir:         "logs",
			Level:       "debug",
			RotateEvery: string(runlog.RotateDaily),
			BackupCount: 7,
			Keep:        10,
			Scope:       string(runlog.ScopeScoped),
		},
		Watch: WatchConfig{
			Enabled:    false,
			DebounceMs: 500,
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Kind:    string(scheduler.ScheduleKindEvery),
			EveryMs: (time.Hour).Milliseconds(),
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9311",
		},
	}
}

// Options maps the logging section onto session options for a module.
func (c LoggingConfig) Options(module string) runlog.Options {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.DebugLevel
	}

	return runlog.Options{
		Module:      module,
		Dir:         c.Dir,
		Level:       level,
		RotateEvery: runlog.RotateInterval(c.RotateEvery),
		BackupCount: c.BackupCount,
		Keep:        c.Keep,
		Scope:       runlog.Scope(c.Scope),
		Quiet:       c.Quiet,
	}
}

// ScheduleSpec maps the schedule section onto a scheduler schedule.
func (c ScheduleConfig) ScheduleSpec() scheduler.Schedule {
	return scheduler.Schedule{
		Kind:  scheduler.ScheduleKind(c.Kind),
		Every: time.Duration(c.EveryMs) * time.Millisecond,
		Expr:  c.Expr,
	}
}

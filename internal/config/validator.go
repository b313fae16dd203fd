package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/runlogd/runlog/internal/scheduler"
	"github.com/runlogd/runlog/pkg/runlog"
)

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole configuration.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateLogging(cfg.Logging); err != nil {
		return err
	}
	if cfg.Schedule.Enabled {
		if err := v.ValidateSchedule(cfg.Schedule); err != nil {
			return err
		}
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch debounce cannot be negative")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		return fmt.Errorf("metrics listen address is required when metrics are enabled")
	}
	return nil
}

// ValidateLogging checks the logging section.
func (v *Validator) ValidateLogging(cfg LoggingConfig) error {
	if cfg.Dir == "" {
		return fmt.Errorf("log directory cannot be empty")
	}
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	switch runlog.RotateInterval(cfg.RotateEvery) {
	case runlog.RotateDaily, runlog.RotateHourly, runlog.RotateMinutely:
	default:
		return fmt.Errorf("invalid rotate_every %q (midnight, hour, minute)", cfg.RotateEvery)
	}

	switch runlog.Scope(cfg.Scope) {
	case runlog.ScopeGlobal, runlog.ScopeScoped:
	default:
		return fmt.Errorf("invalid scope %q (global, scoped)", cfg.Scope)
	}

	if cfg.BackupCount < 0 {
		return fmt.Errorf("backup_count cannot be negative")
	}
	if cfg.Keep < 0 {
		return fmt.Errorf("keep cannot be negative")
	}
	return nil
}

// ValidateSchedule checks the schedule section.
func (v *Validator) ValidateSchedule(cfg ScheduleConfig) error {
	switch scheduler.ScheduleKind(cfg.Kind) {
	case scheduler.ScheduleKindEvery:
		if cfg.EveryMs <= 0 {
			return fmt.Errorf("'every' schedule requires a positive every_ms")
		}
	case scheduler.ScheduleKindCron:
		if cfg.Expr == "" {
			return fmt.Errorf("'cron' schedule requires an expr")
		}
	default:
		return fmt.Errorf("unknown schedule kind: %s", cfg.Kind)
	}
	return nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogging(t *testing.T) {
	v := NewValidator()

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, v.ValidateLogging(DefaultConfig().Logging))
	})

	t.Run("empty dir", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.Dir = ""
		assert.Error(t, v.ValidateLogging(cfg))
	})

	t.Run("bad level", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.Level = "chatty"
		assert.Error(t, v.ValidateLogging(cfg))
	})

	t.Run("bad rotate interval", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.RotateEvery = "fortnight"
		assert.Error(t, v.ValidateLogging(cfg))
	})

	t.Run("bad scope", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.Scope = "everything"
		assert.Error(t, v.ValidateLogging(cfg))
	})

	t.Run("negative keep", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.Keep = -1
		assert.Error(t, v.ValidateLogging(cfg))
	})

	t.Run("negative backup count", func(t *testing.T) {
		cfg := DefaultConfig().Logging
		cfg.BackupCount = -1
		assert.Error(t, v.ValidateLogging(cfg))
	})
}

func TestValidateSchedule(t *testing.T) {
	v := NewValidator()

	t.Run("every", func(t *testing.T) {
		assert.NoError(t, v.ValidateSchedule(ScheduleConfig{Kind: "every", EveryMs: 1000}))
		assert.Error(t, v.ValidateSchedule(ScheduleConfig{Kind: "every", EveryMs: 0}))
	})

	t.Run("cron", func(t *testing.T) {
		assert.NoError(t, v.ValidateSchedule(ScheduleConfig{Kind: "cron", Expr: "0 0 * * *"}))
		assert.Error(t, v.ValidateSchedule(ScheduleConfig{Kind: "cron"}))
	})

	t.Run("unknown kind", func(t *testing.T) {
		assert.Error(t, v.ValidateSchedule(ScheduleConfig{Kind: "sometimes"}))
	})
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	t.Run("default config", func(t *testing.T) {
		require.NoError(t, v.Validate(DefaultConfig()))
	})

	t.Run("disabled schedule is not checked", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Schedule.Kind = "sometimes"
		assert.NoError(t, v.Validate(cfg))
	})

	t.Run("enabled schedule is checked", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Schedule.Enabled = true
		cfg.Schedule.Kind = "sometimes"
		assert.Error(t, v.Validate(cfg))
	})

	t.Run("metrics listen required when enabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Metrics.Enabled = true
		cfg.Metrics.Listen = ""
		assert.Error(t, v.Validate(cfg))
	})

	t.Run("negative debounce", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Watch.DebounceMs = -1
		assert.Error(t, v.Validate(cfg))
	})
}

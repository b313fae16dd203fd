package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads the configuration from file
func (l *Loader) Load() (*Config, error) {
	// Determine config path
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".runlog", "runlog.json")
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	// Setup viper
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	// Read environment variables
	v.SetEnvPrefix("RUNLOG")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into config struct
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to file
func (l *Loader) Save(cfg *Config) error {
	// Determine config path
	configPath := l.configPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".runlog", "runlog.json")
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal config to JSON
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	if err := v.MergeConfigMap(configMap(cfg)); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// configMap flattens the config for viper serialization.
func configMap(cfg *Config) map[string]interface{} {
	return map[string]interface{}{
		"logging": map[string]interface{}{
			"dir":          cfg.Logging.Dir,
			"level":        cfg.Logging.Level,
			"rotate_every": cfg.Logging.RotateEvery,
			"backup_count": cfg.Logging.BackupCount,
			"keep":         cfg.Logging.Keep,
			"scope":        cfg.Logging.Scope,
			"quiet":        cfg.Logging.Quiet,
		},
		"watch": map[string]interface{}{
			"enabled":     cfg.Watch.Enabled,
			"debounce_ms": cfg.Watch.DebounceMs,
		},
		"schedule": map[string]interface{}{
			"enabled":  cfg.Schedule.Enabled,
			"kind":     cfg.Schedule.Kind,
			"every_ms": cfg.Schedule.EveryMs,
			"expr":     cfg.Schedule.Expr,
		},
		"metrics": map[string]interface{}{
			"enabled": cfg.Metrics.Enabled,
			"listen":  cfg.Metrics.Listen,
		},
	}
}

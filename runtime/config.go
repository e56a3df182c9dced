package runtime

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for the game runtime
type Config struct {
	// DataDir is where badger keeps state and balances. Ignored when InMemory.
	DataDir string `yaml:"data_dir"`
	// InMemory keeps everything in RAM (tests, ephemeral nodes)
	InMemory bool `yaml:"in_memory"`
	// SyncWrites forces an fsync on every committed call
	SyncWrites bool `yaml:"sync_writes"`

	// Logging
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`

	// MetricsNamespace prefixes every exported metric
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:          "data/arcade",
		InMemory:         false,
		SyncWrites:       true,
		LogLevel:         "info",
		Development:      false,
		MetricsNamespace: "okinoko_arcade",
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.ValidateBasic(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateBasic performs basic validation of the config and reports every
// problem at once.
func (cfg *Config) ValidateBasic() error {
	var result *multierror.Error
	if !cfg.InMemory && cfg.DataDir == "" {
		result = multierror.Append(result, errors.New("data_dir is required unless in_memory is set"))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "log_level"))
	}
	if cfg.MetricsNamespace == "" {
		result = multierror.Append(result, errors.New("metrics_namespace is required"))
	}
	return result.ErrorOrNil()
}

package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().ValidateBasic())
}

func TestValidateBasicReportsEveryProblem(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	err := cfg.ValidateBasic()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)

	cfg = &Config{InMemory: true, LogLevel: "debug", MetricsNamespace: "x"}
	assert.NoError(t, cfg.ValidateBasic())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arcade.yaml")
	require.NoError(t, os.WriteFile(path, []byte("in_memory: true\nlog_level: debug\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.InMemory)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "okinoko_arcade", cfg.MetricsNamespace)
	assert.True(t, cfg.SyncWrites)

	require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("data_dir: \"\"\n"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Development = true
	cfg.LogLevel = "warn"
	l, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))
	assert.True(t, l.Core().Enabled(1))

	_, err = NewLogger(&Config{LogLevel: "nope"})
	assert.Error(t, err)
}

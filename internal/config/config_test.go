package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrb3942/jsonrpcmsg/internal/stream"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{"JSONRPCMSG_FORMAT", "JSONRPCMSG_LOG_LEVEL", "JSONRPCMSG_MAX_MESSAGE_SIZE"} {
		unsetEnv(t, k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxMessageSize), cfg.MaxMessageSize)
	assert.Equal(t, stream.FormatCompact, cfg.OutputFormat())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "config.yaml", "format: yaml\nlog_level: debug\nmax_message_size: 1024\n")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(1024), cfg.MaxMessageSize)
	assert.Equal(t, stream.FormatYAML, cfg.OutputFormat())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("JSONRPCMSG_FORMAT", "styled")

	path := writeFile(t, "config.yaml", "format: yaml\n")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "styled", cfg.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	envFile := writeFile(t, ".env", "JSONRPCMSG_LOG_LEVEL=warn\nJSONRPCMSG_MAX_MESSAGE_SIZE=77\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(77), cfg.MaxMessageSize)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	noEnv := filepath.Join(t.TempDir(), "missing.env")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnv)
	require.Error(t, err)

	bad := writeFile(t, "config.yaml", "format: xml\n")
	_, err = Load(bad, noEnv)
	require.ErrorIs(t, err, ErrInvalidConfig)

	badLevel := writeFile(t, "config.yaml", "log_level: loud\n")
	_, err = Load(badLevel, noEnv)
	require.ErrorIs(t, err, ErrInvalidConfig)

	negative := writeFile(t, "config.yaml", "max_message_size: -1\n")
	_, err = Load(negative, noEnv)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	//nolint:govet //Do not reorder struct
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Valid", Config{Format: "styled", LogLevel: "error", MaxMessageSize: 0}, false},
		{"Upper case", Config{Format: "YAML", LogLevel: "DEBUG"}, false},
		{"Empty format", Config{LogLevel: "info"}, true},
		{"Bad level", Config{Format: "compact", LogLevel: "verbose"}, true},
		{"Negative size", Config{Format: "compact", LogLevel: "info", MaxMessageSize: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)

				return
			}

			assert.NoError(t, err)
		})
	}
}

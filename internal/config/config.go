// Package config loads settings for the jsonrpcfmt tool from an optional YAML
// file, JSONRPCMSG_* environment variables and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rrb3942/jsonrpcmsg/internal/stream"
)

// EnvPrefix is prepended to every environment variable the tool reads.
const EnvPrefix = "JSONRPCMSG"

const (
	keyFormat         = "format"
	keyMaxMessageSize = "max_message_size"
	keyLogLevel       = "log_level"
)

// Defaults.
const (
	DefaultFormat         = "compact"
	DefaultMaxMessageSize = 4 << 20
	DefaultLogLevel       = "info"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Format         string `mapstructure:"format"`
	LogLevel       string `mapstructure:"log_level"`
	MaxMessageSize int64  `mapstructure:"max_message_size"`
}

// Load reads the config file at path, if path is not empty, over the
// built-in defaults. Environment variables such as JSONRPCMSG_FORMAT take
// precedence over the file. Variables from envFiles (".env" when none are
// given) are added to the environment first; missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault(keyFormat, DefaultFormat)
	v.SetDefault(keyMaxMessageSize, DefaultMaxMessageSize)
	v.SetDefault(keyLogLevel, DefaultLogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting holds a usable value.
func (c *Config) Validate() error {
	if _, err := stream.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalidConfig, err)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}

	if c.MaxMessageSize < 0 {
		return fmt.Errorf("%w: max_message_size must not be negative, got %d", ErrInvalidConfig, c.MaxMessageSize)
	}

	return nil
}

// OutputFormat returns the parsed [stream.Format]. Call after [Config.Validate].
func (c *Config) OutputFormat() stream.Format {
	f, _ := stream.ParseFormat(c.Format)

	return f
}

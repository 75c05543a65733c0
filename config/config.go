// Package config loads querykit settings from a config file, the environment
// and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Konsultn-Engineering/querykit/connector"
)

const EnvPrefix = "QUERYKIT"

type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

type Config struct {
	Driver             string           `json:"driver" yaml:"driver" mapstructure:"driver"`
	Connection         connector.Config `json:"connection" yaml:"connection" mapstructure:"connection"`
	Log                LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	StatementCacheSize int              `json:"statement_cache_size" yaml:"statement_cache_size" mapstructure:"statement_cache_size"`
}

// Load reads path when it is non-empty, otherwise querykit.yaml from the
// working directory if present. QUERYKIT_* variables override file values;
// .env and .env.local are loaded first, the latter taking precedence.
func Load(path string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("driver", "mysql")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("statement_cache_size", 256)
	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"connection.host", "connection.port", "connection.database",
		"connection.username", "connection.password", "connection.ssl_mode",
		"connection.dsn", "connection.connect_timeout", "connection.query_timeout",
	} {
		_ = v.BindEnv(key)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("querykit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Connection.StatementCacheSize == 0 {
		cfg.Connection.StatementCacheSize = cfg.StatementCacheSize
	}
	return &cfg, nil
}

func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := os.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

// NewLogger builds a slog logger writing to w in the configured format.
func NewLogger(w io.Writer, c LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", c.Level, err)
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
}

package connector

import (
	"fmt"
	"time"
)

// Config represents database connection configuration.
type Config struct {
	Host     string            `json:"host" yaml:"host" mapstructure:"host"`
	Port     int               `json:"port" yaml:"port" mapstructure:"port"`
	Database string            `json:"database" yaml:"database" mapstructure:"database"`
	Username string            `json:"username" yaml:"username" mapstructure:"username"`
	Password string            `json:"password" yaml:"password" mapstructure:"password"`
	SSLMode  string            `json:"ssl_mode" yaml:"ssl_mode" mapstructure:"ssl_mode"`
	Params   map[string]string `json:"params" yaml:"params" mapstructure:"params"`
	// DSN, when set, is handed to the driver as is and the fields above are ignored.
	DSN                string        `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
	Pool               PoolConfig    `json:"pool" yaml:"pool" mapstructure:"pool"`
	ConnectTimeout     time.Duration `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`
	QueryTimeout       time.Duration `json:"query_timeout" yaml:"query_timeout" mapstructure:"query_timeout"`
	StatementCacheSize int           `json:"statement_cache_size" yaml:"statement_cache_size" mapstructure:"statement_cache_size"`
	Retry              *RetryConfig  `json:"retry,omitempty" yaml:"retry,omitempty" mapstructure:"retry"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen         int           `json:"max_open" yaml:"max_open" mapstructure:"max_open"`
	MaxIdle         int           `json:"max_idle" yaml:"max_idle" mapstructure:"max_idle"`
	MaxLifetime     time.Duration `json:"max_lifetime" yaml:"max_lifetime" mapstructure:"max_lifetime"`
	MaxIdleTime     time.Duration `json:"max_idle_time" yaml:"max_idle_time" mapstructure:"max_idle_time"`
	HealthCheckFreq time.Duration `json:"health_check_freq" yaml:"health_check_freq" mapstructure:"health_check_freq"`
}

// RetryConfig defines connection retry behavior.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay" mapstructure:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay" mapstructure:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
}

// WithDefaults returns the pool settings with zero values replaced.
func (p PoolConfig) WithDefaults() PoolConfig {
	if p.MaxOpen <= 0 {
		p.MaxOpen = 10
	}
	if p.MaxIdle < 0 {
		p.MaxIdle = 5
	}
	if p.MaxLifetime == 0 {
		p.MaxLifetime = time.Hour
	}
	if p.MaxIdleTime == 0 {
		p.MaxIdleTime = 30 * time.Minute
	}
	return p
}

// Validate checks the fields a network provider needs. A raw DSN skips the checks.
func (c Config) Validate() error {
	if c.DSN != "" {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

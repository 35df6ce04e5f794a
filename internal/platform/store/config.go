package store

import "time"

// Default retry policy for hard KV operations
const (
	DefaultRetries    = 3
	DefaultRetryDelay = 100 * time.Millisecond
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	Redis RedisConfig
}

// RedisConfig configures redis connectivity and the adapter retry policy
type RedisConfig struct {
	Enabled bool
	Addr    string
	DB      int

	DialTimeout  time.Duration // default 5s
	ReadTimeout  time.Duration // default 5s
	WriteTimeout time.Duration // default 5s

	// Retries is the total attempt bound for a hard operation, default 3
	Retries int
	// RetryDelay is the fixed inter-attempt delay, default 100ms
	RetryDelay time.Duration

	// Guard/boot knobs:
	PingRetries int           // default 6
	PingTimeout time.Duration // default 3s
}

// withDefaults fills zero values with the documented defaults
func (c RedisConfig) withDefaults() RedisConfig {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.PingRetries <= 0 {
		c.PingRetries = 6
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = 3 * time.Second
	}
	return c
}

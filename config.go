package tweak

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds registry-wide defaults. It is passed explicitly to
// NewRegistry.
type Config struct {
	// MonitorInterval is the polling interval for monitors whose params do
	// not set one.
	MonitorInterval time.Duration `env:"MONITOR_INTERVAL" envDefault:"200ms"`

	// LogBufferSize is the default number of readings kept by log monitors.
	LogBufferSize int `env:"LOG_BUFFER_SIZE" envDefault:"1"`

	// GraphBufferSize is the default number of readings kept by graph monitors.
	GraphBufferSize int `env:"GRAPH_BUFFER_SIZE" envDefault:"64"`

	// PropagatePanics lets emitter handler panics escape to the caller of
	// Emit instead of being recovered and reported.
	PropagatePanics bool `env:"PROPAGATE_PANICS" envDefault:"false"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		MonitorInterval: DefaultMonitorInterval,
		LogBufferSize:   DefaultMonitorBufferSize,
		GraphBufferSize: 64,
	}
}

// LoadConfig reads Config from TWEAK_-prefixed environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TWEAK_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

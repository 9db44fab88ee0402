package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
)

// Config is the process-level configuration. Per-service settings live
// in the registry file, not here.
type Config struct {
	Addr        string `env:"ADDR" envDefault:"127.0.0.1:8080"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"control-center"`
	Version     string `env:"CONTROL_CENTER_VERSION" envDefault:"0.1.0"`

	// RegistryPath points at the YAML file listing monitored services.
	RegistryPath string `env:"CONTROL_CENTER_CONFIG" envDefault:"control_center.yaml"`

	// ProbeTimeout is the default per-service deadline; services may
	// override it in the registry. TotalTimeout bounds a whole /status
	// request regardless of per-service settings.
	ProbeTimeout time.Duration `env:"CONTROL_CENTER_HTTP_TIMEOUT" envDefault:"2s"`
	TotalTimeout time.Duration `env:"CONTROL_CENTER_TOTAL_TIMEOUT" envDefault:"4s"`

	// MaxConcurrentChecks caps probe parallelism; 0 means one goroutine
	// per configured service.
	MaxConcurrentChecks int `env:"MAX_CONCURRENT_CHECKS" envDefault:"0"`

	// Rate limit for the public endpoints; 0 disables it.
	StatusRPM   int `env:"STATUS_RPM" envDefault:"0"`
	StatusBurst int `env:"STATUS_BURST" envDefault:"0"`
}

// FromEnv parses configuration from the environment and validates it.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs error
	if c.ProbeTimeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("CONTROL_CENTER_HTTP_TIMEOUT must be positive, got %s", c.ProbeTimeout))
	}
	if c.TotalTimeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("CONTROL_CENTER_TOTAL_TIMEOUT must be positive, got %s", c.TotalTimeout))
	}
	if c.MaxConcurrentChecks < 0 {
		errs = multierr.Append(errs, fmt.Errorf("MAX_CONCURRENT_CHECKS must be >= 0, got %d", c.MaxConcurrentChecks))
	}
	return errs
}

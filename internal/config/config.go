// Package config loads symplot settings from defaults, an optional YAML file
// and SYMPLOT_* environment variables, in that order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/symplot/sample"
)

// EnvPrefix prefixes every environment variable, e.g. SYMPLOT_SERVER_PORT or
// SYMPLOT_SAMPLING_CURVE_POINTS.
const EnvPrefix = "symplot"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LogConfig      `yaml:"logging"`
	Sampling SamplingConfig `yaml:"sampling"`
}

// ServerConfig holds HTTP tool server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" split_words:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true"`

	// AllowOrigins enables CORS for the listed origins. "*" allows any
	// origin; an empty list leaves CORS off.
	AllowOrigins []string `yaml:"allow_origins" split_words:"true"`
	// RequestsPerSecond and Burst bound each client IP. Zero disables the
	// limit.
	RequestsPerSecond int `yaml:"requests_per_second" split_words:"true"`
	Burst             int `yaml:"burst"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SamplingConfig holds grid resolutions for the sampling commands.
type SamplingConfig struct {
	CurvePoints      int `yaml:"curve_points" split_words:"true"`
	SurfacePoints    int `yaml:"surface_points" split_words:"true"`
	Implicit2DPoints int `yaml:"implicit2d_points" envconfig:"IMPLICIT2D_POINTS"`
	Implicit3DPoints int `yaml:"implicit3d_points" envconfig:"IMPLICIT3D_POINTS"`

	// MaxGridPoints bounds the total number of evaluations of one request.
	MaxGridPoints int `yaml:"max_grid_points" split_words:"true"`
	// Workers is the number of goroutines evaluating grid rows.
	Workers int `yaml:"workers"`
}

// Sampler returns a grid sampler bounded by these settings.
func (s SamplingConfig) Sampler() sample.Sampler {
	return sample.Sampler{MaxPoints: s.MaxGridPoints, Workers: s.Workers}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,

			RequestsPerSecond: 100,
			Burst:             200,
		},
		Logging: LogConfig{
			Level: "info",
		},
		Sampling: SamplingConfig{
			CurvePoints:      1000,
			SurfacePoints:    100,
			Implicit2DPoints: 200,
			Implicit3DPoints: 50,
			MaxGridPoints:    4_000_000,
			Workers:          4,
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "load config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = multierr.Append(errs, errors.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = multierr.Append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	for _, origin := range c.Server.AllowOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = multierr.Append(errs, errors.Errorf("server.allow_origins: bad origin %q", origin))
		}
	}
	if c.Server.RequestsPerSecond < 0 || c.Server.Burst < 0 {
		errs = multierr.Append(errs, errors.New("server rate limit must not be negative"))
	} else if c.Server.RequestsPerSecond > 0 && c.Server.Burst == 0 {
		errs = multierr.Append(errs, errors.New("server.burst must be positive when requests_per_second is set"))
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "logging.level"))
	}
	for name, n := range map[string]int{
		"sampling.curve_points":      c.Sampling.CurvePoints,
		"sampling.surface_points":    c.Sampling.SurfacePoints,
		"sampling.implicit2d_points": c.Sampling.Implicit2DPoints,
		"sampling.implicit3d_points": c.Sampling.Implicit3DPoints,
	} {
		if n < 2 {
			errs = multierr.Append(errs, errors.Errorf("%s must be at least 2, got %d", name, n))
		}
	}
	if c.Sampling.MaxGridPoints <= 0 {
		errs = multierr.Append(errs, errors.New("sampling.max_grid_points must be positive"))
	}
	if c.Sampling.Workers < 1 {
		errs = multierr.Append(errs, errors.New("sampling.workers must be at least 1"))
	}
	return errs
}

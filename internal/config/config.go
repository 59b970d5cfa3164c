package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Upstream  Upstream  `yaml:"upstream"`
	Session   Session   `yaml:"session"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Server struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"logLevel"` // debug, info, warn, error
	// Timezone resolves record dates and times, e.g. "Asia/Tokyo"
	Timezone     string   `yaml:"timezone"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

type Upstream struct {
	BaseURL       string        `yaml:"baseURL"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"userAgent"`
	ListCacheTTL  time.Duration `yaml:"listCacheTTL"`
	MemcachedAddr string        `yaml:"memcachedAddr"`
}

type Session struct {
	IdleTTL time.Duration `yaml:"idleTTL"`
}

type Telemetry struct {
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	ServiceName   string `yaml:"serviceName"`
}

func Default() Config {
	return Config{
		Server: Server{
			Listen:   ":8000",
			LogLevel: "info",
			Timezone: "UTC",
		},
		Upstream: Upstream{
			Timeout:      10 * time.Second,
			UserAgent:    "petalert-bff/1.0",
			ListCacheTTL: 30 * time.Second,
		},
		Session: Session{
			IdleTTL: 30 * time.Minute,
		},
		Telemetry: Telemetry{
			ServiceName: "petalert",
		},
	}
}

// Load reads a yaml file over the defaults.
func Load(path string) (Config, error) {
	config := Default()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to decode config %s", path)
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.baseURL is required")
	}
	if !strings.HasPrefix(c.Upstream.BaseURL, "http://") && !strings.HasPrefix(c.Upstream.BaseURL, "https://") {
		return errors.Errorf("upstream.baseURL must be http(s): %q", c.Upstream.BaseURL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Telemetry.EnableTrace && c.Telemetry.TraceEndpoint == "" {
		return errors.New("telemetry.traceEndpoint is required when tracing is enabled")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idleTTL must be positive")
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid server.timezone %q", c.Server.Timezone)
	}
	return loc, nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Server.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

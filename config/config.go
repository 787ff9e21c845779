package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Miuzarte/CaptureShield/capture"
	"github.com/Miuzarte/CaptureShield/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "captureshield"
	fileName = "config.yaml"
)

type Config struct {
	LogLevel       string        `yaml:"log_level"`
	LogPretty      bool          `yaml:"log_pretty"`
	CaptureBackend string        `yaml:"capture_backend"`
	ScriptTimeout  time.Duration `yaml:"script_timeout"`
	DemoTitle      string        `yaml:"demo_title"`
}

func Default() *Config {
	return &Config{
		LogLevel:       "info",
		LogPretty:      true,
		CaptureBackend: capture.KindGDI,
		ScriptTimeout:  0,
		DemoTitle:      "CaptureShield",
	}
}

// DefaultPath is <UserConfigDir>/captureshield/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads path, or the default path when empty. A missing file yields the
// defaults; the file is never created.
func Load(path string) (*Config, string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, path, nil
	case err != nil:
		return nil, path, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, path, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.CaptureBackend {
	case capture.KindGDI, capture.KindDXGI:
	default:
		return fmt.Errorf("unknown capture_backend %q", c.CaptureBackend)
	}
	if c.ScriptTimeout < 0 {
		return fmt.Errorf("script_timeout must not be negative, got %s", c.ScriptTimeout)
	}
	return nil
}

// Overlay applies values set on v (flags and CAPTURESHIELD_ env vars) on
// top of the file values.
func (c *Config) Overlay(v *viper.Viper) error {
	if s := v.GetString("log_level"); s != "" {
		c.LogLevel = s
	}
	if v.IsSet("log_pretty") {
		c.LogPretty = v.GetBool("log_pretty")
	}
	if s := v.GetString("capture_backend"); s != "" {
		c.CaptureBackend = s
	}
	if v.IsSet("script_timeout") {
		c.ScriptTimeout = v.GetDuration("script_timeout")
	}
	return c.Validate()
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Package config loads device endpoint and logging settings from YAML files
// or the environment.
package config

import (
	"io"
	"time"

	"github.com/lexfrei/go-asa/api/rest"
	"github.com/lexfrei/go-asa/observability"
)

// Config holds everything needed to talk to one device.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Logging LoggingConfig `yaml:"logging"`
}

// DeviceConfig describes the device endpoint.
type DeviceConfig struct {
	Host       string        `yaml:"host"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	VerifyCert bool          `yaml:"verify_cert"`
	Timeout    time.Duration `yaml:"timeout"`
	PageLimit  int           `yaml:"page_limit"`
}

// LoggingConfig controls client log output.
type LoggingConfig struct {
	// Level is one of debug, info, warning, error or critical.
	Level string `yaml:"level"`
}

// Defaults returns a configuration with default values.
func Defaults() Config {
	return Config{
		Device: DeviceConfig{
			Timeout:   rest.DefaultTimeout,
			PageLimit: rest.DefaultPageLimit,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Logger builds a text logger writing to w at the configured level.
//
//nolint:ireturn // Returns the injectable logger interface
func (c *Config) Logger(w io.Writer) observability.Logger {
	return observability.NewTextLogger(w, observability.ParseLevel(c.Logging.Level))
}

// ClientConfig converts the configuration into a device endpoint. Log output
// goes to w.
func (c *Config) ClientConfig(w io.Writer) *rest.ClientConfig {
	return &rest.ClientConfig{
		Host:       c.Device.Host,
		Username:   c.Device.Username,
		Password:   c.Device.Password,
		VerifyCert: c.Device.VerifyCert,
		Timeout:    c.Device.Timeout,
		PageLimit:  c.Device.PageLimit,
		Logger:     c.Logger(w),
	}
}

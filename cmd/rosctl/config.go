package main

import (
	"crypto/tls"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Zereker/rosapi"
)

// Config is the rosctl configuration file.
type Config struct {
	Hosts    []string      `yaml:"hosts"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
	Encoding string        `yaml:"encoding"`
	Parallel int           `yaml:"parallel"`
	TLS      TLSConfig     `yaml:"tls"`
	Logging  LogConfig     `yaml:"logging"`
}

// TLSConfig enables api-ssl connections.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	ServerName         string `yaml:"server_name"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level   string `yaml:"level"`
	NoColor bool   `yaml:"no_color"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Username: "admin",
		Timeout:  10 * time.Second,
		Encoding: "ascii",
		Parallel: 4,
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}
	return cfg, nil
}

// Validate checks the fields a run needs.
func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("no hosts configured")
	}
	if c.Timeout < 0 {
		return errors.Errorf("negative timeout %s", c.Timeout)
	}
	if c.Parallel <= 0 {
		c.Parallel = 1
	}
	return nil
}

// Options converts the configuration into connection options.
func (c *Config) Options(logger rosapi.Logger) ([]rosapi.Option, error) {
	enc, err := rosapi.EncodingByName(c.Encoding)
	if err != nil {
		return nil, err
	}

	opts := []rosapi.Option{
		rosapi.EncodingOption(enc),
		rosapi.TimeoutOption(c.Timeout),
		rosapi.LoggerOption(logger),
	}
	if c.TLS.Enabled {
		opts = append(opts, rosapi.TLSConfigOption(&tls.Config{
			InsecureSkipVerify: c.TLS.InsecureSkipVerify,
			ServerName:         c.TLS.ServerName,
		}))
	}
	return opts, nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/npillmayer/isam"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of isamtool.
type Config struct {
	LockTimeout time.Duration `yaml:"lock_timeout"`
	Strict      bool          `yaml:"strict"`
	Top         int           `yaml:"top"`
	Color       string        `yaml:"color"` // auto, always or never
}

func defaultConfig() *Config {
	return &Config{
		LockTimeout: time.Second,
		Top:         10,
		Color:       "auto",
	}
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	conf := defaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	switch conf.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("parsing config: color must be auto, always or never, is %q", conf.Color)
	}
	if conf.Top < 0 || conf.LockTimeout < 0 {
		return nil, fmt.Errorf("parsing config: negative setting")
	}
	return conf, nil
}

// options translates the settings into collection options.
func (conf *Config) options(name string) []isam.Option {
	return []isam.Option{
		isam.WithName(name),
		isam.WithLockTimeout(conf.LockTimeout),
		isam.WithStrict(conf.Strict),
	}
}

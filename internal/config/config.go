package config

import (
	"fmt"
	"os"
	"strings"

	"goldilocks/internal/models"

	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

type RenderConfig struct {
	Nulls   string `yaml:"nulls"` // empty, explicit
	Workers int    `yaml:"workers"`
	Sort    bool   `yaml:"sort"`
	Unique  bool   `yaml:"unique"`
}

type Config struct {
	Log    LogConfig    `yaml:"log"`
	Render RenderConfig `yaml:"render"`
}

const defaultWorkers = 8

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Encoding: "console"},
		Render: RenderConfig{Nulls: "empty", Workers: defaultWorkers},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	conf := Default()
	if configPath == "" {
		return conf, nil
	}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(yamlFile, conf); err != nil {
		return nil, fmt.Errorf("parsing YAML %s: %w", configPath, err)
	}

	if err := conf.Normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	return conf, nil
}

// Normalize lower-cases enumerated values, fills blanks with defaults and validates the result.
func (c *Config) Normalize() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Encoding = strings.ToLower(strings.TrimSpace(c.Log.Encoding))
	c.Render.Nulls = strings.ToLower(strings.TrimSpace(c.Render.Nulls))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = "console"
	}
	if c.Render.Nulls == "" {
		c.Render.Nulls = "empty"
	}
	if c.Render.Workers == 0 {
		c.Render.Workers = defaultWorkers
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("log.encoding must be console or json, got %q", c.Log.Encoding)
	}
	if _, err := models.ParseNullStyle(c.Render.Nulls); err != nil {
		return fmt.Errorf("render.nulls: %w", err)
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render.workers must be positive, got %d", c.Render.Workers)
	}
	return nil
}

// NullStyle returns the parsed render.nulls value. Call after Normalize.
func (c *Config) NullStyle() models.NullStyle {
	style, _ := models.ParseNullStyle(c.Render.Nulls)
	return style
}

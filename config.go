package bonsai

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"
)

/*
Config holds the settings of a classifier as read from a YAML document like:

	depth_limit: 4
	grid: midpoint
	concurrency: 2
	log_level: debug

Every setting is optional. Without depth_limit trees are grown without
limit, grid defaults to range, concurrency to 1 and log_level to info.
A concurrency of 0 also means the default.
*/
type Config struct {
	DepthLimit  *int   `yaml:"depth_limit,omitempty"`
	Grid        string `yaml:"grid,omitempty"`
	Concurrency int    `yaml:"concurrency,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

/*
ReadConfig takes a slice of bytes with a configuration in YAML and returns
the validated Config parsed from it or an error. Unknown settings are an
error.
*/
func ReadConfig(data []byte) (*Config, error) {
	c := &Config{}
	err := yaml.UnmarshalStrict(data, c)
	if err != nil {
		return nil, fmt.Errorf("parsing yml config: %w", err)
	}
	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
ReadConfigFromFile takes a filepath string, reads its contents and uses
ReadConfig to parse it and return the Config or an error.
*/
func ReadConfigFromFile(filepath string) (*Config, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading config yml file %s: %w", filepath, err)
	}
	c, err := ReadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config yml file %s: %w", filepath, err)
	}
	return c, nil
}

// Validate returns a *ConfigurationError for the first invalid setting
// of the config or nil if they are all valid
func (c *Config) Validate() error {
	if c.DepthLimit != nil && *c.DepthLimit < 1 {
		return &ConfigurationError{Field: "depth_limit", Value: *c.DepthLimit, Reason: "must be at least 1"}
	}
	if _, err := GridByName(c.Grid); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return &ConfigurationError{Field: "concurrency", Value: c.Concurrency, Reason: "must not be negative, 0 means 1"}
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return &ConfigurationError{Field: "log_level", Value: c.LogLevel, Reason: err.Error()}
		}
	}
	return nil
}

// Options validates the config and returns the classifier options
// that apply it. The logger is not among them, see Logger.
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	grid, _ := GridByName(c.Grid)
	opts := []Option{WithGrid(grid)}
	if c.DepthLimit != nil {
		opts = append(opts, WithDepthLimit(*c.DepthLimit))
	}
	if c.Concurrency > 0 {
		opts = append(opts, WithConcurrency(c.Concurrency))
	}
	return opts, nil
}

// Logger returns a logger writing to w at the configured log level
func (c *Config) Logger(w io.Writer) (*logrus.Logger, error) {
	return NewLogger(w, c.LogLevel)
}

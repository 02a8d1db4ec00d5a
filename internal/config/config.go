// Package config loads the scheduler's runtime configuration: the
// communication penalty and memory limit it runs with, the availability
// timeline it schedules against, and the ambient API/logging settings.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the complete configuration for the mcpscheduler binary.
type Config struct {
	Scheduler    SchedulerConfig    `yaml:"scheduler" mapstructure:"scheduler"`
	Availability AvailabilityConfig `yaml:"availability" mapstructure:"availability"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
	API          APIConfig          `yaml:"api" mapstructure:"api"`
	Paths        PathsConfig        `yaml:"paths" mapstructure:"paths"`
}

// SchedulerConfig holds the core's scalar parameters.
type SchedulerConfig struct {
	MemoryLimit          int `yaml:"memory_limit" mapstructure:"memory_limit"`
	CommunicationPenalty int `yaml:"communication_penalty" mapstructure:"communication_penalty"`
	QueueSize            int `yaml:"queue_size" mapstructure:"queue_size"`
}

// AvailabilityThreshold is one entry of the piecewise-constant availability
// timeline. YAML/JSON cannot key a map by arbitrary integers portably, so
// the timeline is a sorted list rather than a map keyed by threshold.
type AvailabilityThreshold struct {
	Threshold int   `yaml:"threshold" mapstructure:"threshold"`
	Low       []int `yaml:"low" mapstructure:"low"`
	High      []int `yaml:"high" mapstructure:"high"`
}

// AvailabilityConfig is the default processor availability timeline used
// when a scheduling request does not supply its own.
type AvailabilityConfig struct {
	Thresholds []AvailabilityThreshold `yaml:"thresholds" mapstructure:"thresholds"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// APIConfig controls the HTTP surface.
type APIConfig struct {
	Listen             string  `yaml:"listen" mapstructure:"listen"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second" mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// PathsConfig holds default file locations for the CLI's schedule command.
type PathsConfig struct {
	DefaultGraphPath   string `yaml:"default_graph_path" mapstructure:"default_graph_path"`
	DefaultBindingPath string `yaml:"default_binding_path" mapstructure:"default_binding_path"`
}

// DefaultConfig returns a Config with the canonical defaults: a
// communication penalty of 1 (§4.4), a memory limit of 1, and a single
// always-active pair of low-memory processors to schedule against when the
// caller supplies none.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			MemoryLimit:          1,
			CommunicationPenalty: 1,
			QueueSize:            1024,
		},
		Availability: AvailabilityConfig{
			Thresholds: []AvailabilityThreshold{
				{Threshold: 0, Low: []int{0, 1}, High: []int{}},
			},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		API: APIConfig{
			Listen:             ":8080",
			RateLimitPerSecond: 10,
			RateLimitBurst:     20,
		},
		Paths: PathsConfig{
			DefaultGraphPath:   "tasks.json",
			DefaultBindingPath: "binding.json",
		},
	}
}

// Load reads configuration from configFile (or the default search path when
// empty), applying OMCP_-prefixed environment variable overrides, and
// validates the result.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("mcpscheduler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.mcpscheduler")
		v.AddConfigPath("/etc/mcpscheduler")
	}

	v.SetEnvPrefix("OMCP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the scalar parameters and timeline are well-formed.
func (c *Config) Validate() error {
	if c.Scheduler.MemoryLimit <= 0 {
		return fmt.Errorf("scheduler.memory_limit must be positive")
	}
	if len(c.Availability.Thresholds) == 0 {
		return fmt.Errorf("availability.thresholds must contain at least one entry")
	}
	if c.Availability.Thresholds[0].Threshold != 0 {
		return fmt.Errorf("availability.thresholds[0].threshold must be 0")
	}
	prev := -1
	for _, t := range c.Availability.Thresholds {
		if t.Threshold <= prev {
			return fmt.Errorf("availability.thresholds must be strictly increasing")
		}
		prev = t.Threshold
	}
	return nil
}

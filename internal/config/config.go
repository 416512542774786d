package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds the timing constants and thresholds of the viewer. All
// of them are tunable without changing algorithmic behavior.
type Config struct {
	// RevealDelayMS delays the secondary selection pass after load,
	// correcting for late layout shifts.
	RevealDelayMS int `yaml:"reveal_delay_ms" koanf:"reveal_delay_ms"`

	// FadeMS is the media fade duration, also used for emoji reveals.
	FadeMS int `yaml:"fade_ms" koanf:"fade_ms"`

	// StaggerMS spaces consecutive media loads apart.
	StaggerMS int `yaml:"stagger_ms" koanf:"stagger_ms"`

	// ThinWidth is the viewport width (columns) below which media
	// loading is deferred.
	ThinWidth int `yaml:"thin_width" koanf:"thin_width"`

	// StepCap clamps the per-frame scroll step magnitude.
	StepCap int `yaml:"step_cap" koanf:"step_cap"`

	// FrameMS is the interval between animation frames.
	FrameMS int `yaml:"frame_ms" koanf:"frame_ms"`

	// FetchTimeoutMS bounds a single media fetch.
	FetchTimeoutMS int `yaml:"fetch_timeout_ms" koanf:"fetch_timeout_ms"`

	// LogFile receives structured logs; empty disables logging.
	LogFile string `yaml:"log_file" koanf:"log_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		RevealDelayMS:  200,
		FadeMS:         450,
		StaggerMS:      140,
		ThinWidth:      80,
		StepCap:        49,
		FrameMS:        16,
		FetchTimeoutMS: 25000,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ONEPAGE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ONEPAGE_STEP_CAP -> step_cap, etc.
	if err := k.Load(env.Provider("ONEPAGE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ONEPAGE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.StepCap < 1 {
		return fmt.Errorf("step_cap must be at least 1, got %d", c.StepCap)
	}
	if c.FrameMS < 1 {
		return fmt.Errorf("frame_ms must be at least 1, got %d", c.FrameMS)
	}
	for name, v := range map[string]int{
		"reveal_delay_ms":  c.RevealDelayMS,
		"fade_ms":          c.FadeMS,
		"stagger_ms":       c.StaggerMS,
		"thin_width":       c.ThinWidth,
		"fetch_timeout_ms": c.FetchTimeoutMS,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

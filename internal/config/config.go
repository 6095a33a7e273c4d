// Package config loads choromap settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"choromap/internal/choropleth"
)

// Config holds all choromap settings.
type Config struct {
	Choropleth ChoroplethConfig `yaml:"choropleth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ChoroplethConfig describes how features are classified. Ramp, when set,
// replaces ColorScale. Breaks, when set, replaces Classes with breaks derived
// from the loaded data and the scale is re-ramped to match their count.
// Otherwise Classes and ColorScale are used as given.
type ChoroplethConfig struct {
	ColorProp  string           `yaml:"colorProp"`
	Classes    []float64        `yaml:"classes"`
	ColorScale []string         `yaml:"colorscale"`
	Ramp       *RampConfig      `yaml:"ramp,omitempty"`
	Breaks     *BreaksConfig    `yaml:"breaks,omitempty"`
	Style      choropleth.Style `yaml:"style"`
}

type RampConfig struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Steps int    `yaml:"steps"`
}

type BreaksConfig struct {
	Method string `yaml:"method"` // equal, quantile
	Count  int    `yaml:"count"`
}

type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the classic population density choropleth.
func Default() *Config {
	return &Config{
		Choropleth: ChoroplethConfig{
			ColorProp:  "density",
			Classes:    []float64{0, 10, 20, 50, 100, 200, 500, 1000},
			ColorScale: []string{"#FFEDA0", "#FED976", "#FEB24C", "#FD8D3C", "#FC4E2A", "#E31A1C", "#BD0026", "#800026"},
			Style: choropleth.Style{
				Weight:      2,
				Opacity:     1,
				Color:       "white",
				DashArray:   "3",
				FillOpacity: 0.7,
			},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("CHOROMAP_COLOR_PROP")); v != "" {
		c.Choropleth.ColorProp = v
	}
	if v := strings.TrimSpace(os.Getenv("CHOROMAP_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("CHOROMAP_LOG_FILE")); v != "" {
		c.Logging.File = v
	}
}

// Resolve turns the settings into a validated classifier config. values are
// the dataset's values for ColorProp and are only consulted when breaks must
// be derived from the data.
func (c ChoroplethConfig) Resolve(values []float64) (choropleth.Config, error) {
	out := choropleth.Config{
		Classes:    c.Classes,
		ColorScale: c.ColorScale,
		ColorProp:  c.ColorProp,
		Style:      c.Style,
	}
	if c.Ramp != nil {
		scale, err := choropleth.Ramp(c.Ramp.From, c.Ramp.To, c.Ramp.Steps)
		if err != nil {
			return choropleth.Config{}, err
		}
		out.ColorScale = scale
	}
	if c.Breaks != nil {
		n := c.Breaks.Count
		if n == 0 {
			n = len(out.ColorScale)
		}
		var (
			classes []float64
			err     error
		)
		switch strings.ToLower(c.Breaks.Method) {
		case "", "quantile":
			classes, err = choropleth.Quantile(values, n)
		case "equal", "equal_interval":
			classes, err = choropleth.EqualInterval(values, n)
		default:
			return choropleth.Config{}, errors.New("unknown breaks method: " + c.Breaks.Method)
		}
		if err != nil {
			return choropleth.Config{}, fmt.Errorf("breaks for %q: %w", c.ColorProp, err)
		}
		out.Classes = classes
		// ties in the data can leave fewer breaks than requested
		if k := len(classes); len(out.ColorScale) != k && len(out.ColorScale) > 0 {
			scale, err := choropleth.Ramp(out.ColorScale[0], out.ColorScale[len(out.ColorScale)-1], k)
			if err != nil {
				return choropleth.Config{}, err
			}
			out.ColorScale = scale
		}
	}
	if err := out.Validate(); err != nil {
		return choropleth.Config{}, err
	}
	return out, nil
}

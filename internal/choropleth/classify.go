// Package choropleth assigns fill colors to features by comparing a numeric
// property against ordered class breaks.
package choropleth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrLengthMismatch = errors.New("classes and colorscale differ in length")
	ErrNoProperty     = errors.New("color property not set")
	ErrBadColor       = errors.New("invalid color")
	ErrNoValues       = errors.New("no finite values")
)

// Style holds the visual attributes of a rendered feature.
type Style struct {
	FillColor   string  `yaml:"fillColor" json:"fillColor"`
	Color       string  `yaml:"color" json:"color"`
	Weight      float64 `yaml:"weight" json:"weight"`
	Opacity     float64 `yaml:"opacity" json:"opacity"`
	FillOpacity float64 `yaml:"fillOpacity" json:"fillOpacity"`
	DashArray   string  `yaml:"dashArray" json:"dashArray"`
}

// Properties is a feature's attribute mapping. It is never modified here.
type Properties map[string]any

// Config is everything needed to classify a feature.
type Config struct {
	Classes    []float64
	ColorScale []string
	ColorProp  string
	Style      Style
}

// Classify returns style with its fill color set to the color of the last
// break (in iteration order) that value strictly exceeds. If no break is
// exceeded the style comes back unchanged. NaN exceeds nothing.
func Classify(value float64, classes []float64, scale []string, style Style) (Style, error) {
	if len(classes) != len(scale) {
		return style, fmt.Errorf("%w: %d classes, %d colors", ErrLengthMismatch, len(classes), len(scale))
	}
	for i, b := range classes {
		if value > b {
			style.FillColor = scale[i]
		}
	}
	return style, nil
}

// Number looks up key in props and reports whether it holds a finite number.
func Number(props Properties, key string) (float64, bool) {
	v, ok := props[key]
	if !ok {
		return 0, false
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		x, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Validate checks the config before any feature is classified.
func (c Config) Validate() error {
	if len(c.Classes) != len(c.ColorScale) {
		return fmt.Errorf("%w: %d classes, %d colors", ErrLengthMismatch, len(c.Classes), len(c.ColorScale))
	}
	if c.ColorProp == "" {
		return ErrNoProperty
	}
	for _, s := range c.ColorScale {
		if _, err := ParseColor(s); err != nil {
			return err
		}
	}
	return nil
}

// StyleFor styles a single feature. A missing or non-numeric property yields
// the default style.
func (c Config) StyleFor(props Properties) (Style, error) {
	v, ok := Number(props, c.ColorProp)
	if !ok {
		if len(c.Classes) != len(c.ColorScale) {
			return c.Style, fmt.Errorf("%w: %d classes, %d colors", ErrLengthMismatch, len(c.Classes), len(c.ColorScale))
		}
		return c.Style, nil
	}
	return Classify(v, c.Classes, c.ColorScale, c.Style)
}

// ClassIndex returns the index of the break that decides value's color, or -1.
func (c Config) ClassIndex(value float64) int {
	idx := -1
	for i, b := range c.Classes {
		if value > b {
			idx = i
		}
	}
	return idx
}

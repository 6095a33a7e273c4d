package choropleth

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var named = map[string]string{
	"white": "#FFFFFF",
	"black": "#000000",
	"gray":  "#808080",
	"grey":  "#808080",
	"red":   "#FF0000",
	"green": "#008000",
	"blue":  "#0000FF",
}

// ParseColor accepts "#RGB", "#RRGGBB" or one of a few CSS color names.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := named[strings.ToLower(s)]; ok {
		s = hex
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return c, nil
}

// Ramp blends n colors from one color to another in HCL space.
func Ramp(from, to string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("ramp: steps must be positive, got %d", n)
	}
	a, err := ParseColor(from)
	if err != nil {
		return nil, err
	}
	b, err := ParseColor(to)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return []string{strings.ToUpper(a.Hex())}, nil
	}
	out := make([]string, n)
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = strings.ToUpper(a.BlendHcl(b, t).Clamped().Hex())
	}
	return out, nil
}

// Contrast picks black or white text for a swatch of the given color.
func Contrast(bg string) string {
	c, err := ParseColor(bg)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

package choropleth

import (
	"fmt"
	"math"
	"strconv"
)

type LegendEntry struct {
	Label string
	Color string
}

// Legend describes each class as shown next to the map. For ascending breaks
// every class but the last reads as a range up to the next break.
func (c Config) Legend() []LegendEntry {
	n := min(len(c.Classes), len(c.ColorScale))
	out := make([]LegendEntry, 0, n)
	for i := 0; i < n; i++ {
		lo := formatBreak(c.Classes[i])
		label := "> " + lo
		if i+1 < n && c.Classes[i+1] > c.Classes[i] {
			hi := formatBreak(c.Classes[i+1])
			label = fmt.Sprintf("%s – %s", lo, hi)
			if hi == lo {
				label = hi
			}
		}
		out = append(out, LegendEntry{Label: label, Color: c.ColorScale[i]})
	}
	return out
}

// Label returns the legend label for value's class, or "" when unclassified.
func (c Config) Label(value float64) string {
	idx := c.ClassIndex(value)
	legend := c.Legend()
	if idx < 0 || idx >= len(legend) {
		return ""
	}
	return legend[idx].Label
}

// formatBreak prints a break at six significant digits. Generated breaks sit
// one ulp below the data minimum, so subnormal values print as 0.
func formatBreak(v float64) string {
	if math.Abs(v) < 0x1p-1022 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

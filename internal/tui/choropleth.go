package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"choromap/internal/choropleth"
	"choromap/internal/config"
)

// resolveChoropleth picks up the dataset's numeric properties and builds the
// classifier for the configured property.
func (m *Model) resolveChoropleth() {
	m.props = m.data.NumericProperties()
	m.propIdx = slices.Index(m.props, m.settings.ColorProp)
	prop := m.settings.ColorProp
	if m.propIdx < 0 && len(m.props) > 0 {
		m.propIdx = 0
		prop = m.props[0]
	}
	m.classifyBy(prop)
}

// classifyBy rebuilds the classifier for prop. Explicit class breaks only make
// sense for the configured property; any other property gets quantile breaks.
func (m *Model) classifyBy(prop string) {
	cc := m.settings
	if prop != cc.ColorProp {
		cc.ColorProp = prop
		if cc.Breaks == nil {
			cc.Breaks = &config.BreaksConfig{Method: "quantile"}
		}
	}
	choro, err := cc.Resolve(m.data.Values(prop))
	if err != nil {
		m.choroOK = false
		m.status = "choropleth: " + err.Error()
		m.logger.Warn("choropleth unavailable", zap.String("prop", prop), zap.Error(err))
		return
	}
	m.choro = choro
	m.choroOK = true
	m.logger.Debug("choropleth resolved",
		zap.String("prop", prop),
		zap.Float64s("classes", choro.Classes),
		zap.Strings("colorscale", choro.ColorScale))
}

// cycleProp moves to the next (or previous) numeric property.
func (m *Model) cycleProp(step int) {
	if len(m.props) == 0 {
		m.status = "no numeric properties"
		return
	}
	m.propIdx = (m.propIdx + step + len(m.props)) % len(m.props)
	m.classifyBy(m.props[m.propIdx])
	if m.choroOK {
		m.status = fmt.Sprintf("classify by: %s", m.choro.ColorProp)
	}
}

func (m Model) choroActive() bool { return m.showChoro && m.choroOK }

// featureStyles classifies every feature; nil when the choropleth is off.
func (m Model) featureStyles() []choropleth.Style {
	if !m.choroActive() {
		return nil
	}
	out := make([]choropleth.Style, len(m.data.Features))
	for i, f := range m.data.Features {
		st, err := m.choro.StyleFor(f.Properties)
		if err != nil {
			m.logger.Warn("classify failed", zap.Int("feature", i), zap.Error(err))
		}
		out[i] = st
	}
	return out
}

// termColor converts a style color to a terminal color; "" when unusable.
func termColor(s string) lipgloss.Color {
	if s == "" {
		return ""
	}
	c, err := choropleth.ParseColor(s)
	if err != nil {
		return ""
	}
	return lipgloss.Color(strings.ToUpper(c.Hex()))
}

const legendWidth = 22

// renderLegend lists the classes with color swatches, like a map colorbar.
func (m Model) renderLegend(h int) string {
	rows := []string{titleStyle.Render(truncate(m.choro.ColorProp, legendWidth-4))}
	for _, e := range m.choro.Legend() {
		sw := lipgloss.NewStyle().
			Background(termColor(e.Color)).
			Foreground(lipgloss.Color(choropleth.Contrast(e.Color))).
			Render("  ")
		rows = append(rows, sw+" "+truncate(e.Label, legendWidth-7))
	}
	if len(m.props) > 1 {
		rows = append(rows, dimStyle.Render("[ ] property"))
	}
	return boxStyle.Width(legendWidth - 2).MaxHeight(h).Render(strings.Join(rows, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

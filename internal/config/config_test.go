package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choromap/internal/choropleth"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "choromap.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg := Default()
	cc, err := cfg.Choropleth.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, "density", cc.ColorProp)
	assert.Len(t, cc.Classes, 8)
	assert.Len(t, cc.ColorScale, 8)

	st, err := cc.StyleFor(choropleth.Properties{"density": 15})
	require.NoError(t, err)
	assert.Equal(t, "#FED976", st.FillColor)
	assert.Equal(t, "white", st.Color)
}

func TestLoad(t *testing.T) {
	t.Setenv("CHOROMAP_COLOR_PROP", "")
	t.Setenv("CHOROMAP_LOG_LEVEL", "")
	t.Setenv("CHOROMAP_LOG_FILE", "")

	p := writeConfig(t, `
choropleth:
  colorProp: pop
  classes: [0, 10, 20]
  colorscale: ["#FFEDA0", "#FEB24C", "#F03B20"]
  style:
    fillOpacity: 0.5
logging:
  file: /tmp/choromap.log
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "pop", cfg.Choropleth.ColorProp)
	assert.Equal(t, []float64{0, 10, 20}, cfg.Choropleth.Classes)
	assert.Equal(t, 0.5, cfg.Choropleth.Style.FillOpacity)
	// untouched defaults survive
	assert.Equal(t, "white", cfg.Choropleth.Style.Color)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/tmp/choromap.log", cfg.Logging.File)

	cc, err := cfg.Choropleth.Resolve(nil)
	require.NoError(t, err)
	st, err := cc.StyleFor(choropleth.Properties{"pop": 15})
	require.NoError(t, err)
	assert.Equal(t, "#FEB24C", st.FillColor)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "choropleth: [unclosed"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHOROMAP_COLOR_PROP", "pagerank")
	t.Setenv("CHOROMAP_LOG_LEVEL", "debug")
	t.Setenv("CHOROMAP_LOG_FILE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pagerank", cfg.Choropleth.ColorProp)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("CHOROMAP_COLOR_PROP", "")
	t.Setenv("CHOROMAP_LOG_LEVEL", "")
	t.Setenv("CHOROMAP_LOG_FILE", "")

	p := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Default().Save(p))
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolveMismatch(t *testing.T) {
	c := Default().Choropleth
	c.ColorScale = c.ColorScale[:3]
	_, err := c.Resolve(nil)
	assert.ErrorIs(t, err, choropleth.ErrLengthMismatch)
}

func TestResolveRamp(t *testing.T) {
	c := ChoroplethConfig{
		ColorProp: "v",
		Classes:   []float64{0, 1, 2, 3},
		Ramp:      &RampConfig{From: "#FFEDA0", To: "#800026", Steps: 4},
	}
	cc, err := c.Resolve(nil)
	require.NoError(t, err)
	require.Len(t, cc.ColorScale, 4)
	assert.Equal(t, "#FFEDA0", cc.ColorScale[0])
	assert.Equal(t, "#800026", cc.ColorScale[3])
}

func TestResolveBreaks(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	c := ChoroplethConfig{
		ColorProp:  "v",
		ColorScale: []string{"#FFEDA0", "#FEB24C", "#F03B20"},
		Breaks:     &BreaksConfig{Method: "quantile"},
	}
	cc, err := c.Resolve(values)
	require.NoError(t, err)
	assert.Len(t, cc.Classes, 3)
	assert.Equal(t, 0, cc.ClassIndex(1))
	assert.Equal(t, 2, cc.ClassIndex(5))

	c.Breaks = &BreaksConfig{Method: "equal", Count: 5}
	cc, err = c.Resolve(values)
	require.NoError(t, err)
	assert.Len(t, cc.Classes, 5)
	assert.Len(t, cc.ColorScale, 5)
	assert.Equal(t, "#FFEDA0", cc.ColorScale[0])

	c.Breaks = &BreaksConfig{Method: "jenks"}
	_, err = c.Resolve(values)
	assert.Error(t, err)

	c.Breaks = &BreaksConfig{Method: "quantile"}
	_, err = c.Resolve(nil)
	assert.ErrorIs(t, err, choropleth.ErrNoValues)
}

func TestResolveBreaksWithTies(t *testing.T) {
	c := ChoroplethConfig{
		ColorProp:  "minutes",
		ColorScale: []string{"#FFEDA0", "#FEB24C", "#FD8D3C", "#F03B20", "#800026"},
		Breaks:     &BreaksConfig{Method: "quantile"},
	}
	cc, err := c.Resolve([]float64{0, 0, 0, 0, 0, 0, 0, 3, 7, 12})
	require.NoError(t, err)
	require.Len(t, cc.Classes, 3)
	require.Len(t, cc.ColorScale, 3)
	assert.Equal(t, "#FFEDA0", cc.ColorScale[0])
	assert.Equal(t, "#800026", cc.ColorScale[2])
	assert.Equal(t, 0, cc.ClassIndex(0))
	assert.Equal(t, 1, cc.ClassIndex(3))
	assert.Equal(t, 2, cc.ClassIndex(12))

	c.Breaks = &BreaksConfig{Method: "equal"}
	cc, err = c.Resolve([]float64{4, 4, 4})
	require.NoError(t, err)
	assert.Len(t, cc.Classes, 1)
	assert.Equal(t, []string{"#FFEDA0"}, cc.ColorScale)
	assert.Equal(t, []choropleth.LegendEntry{{Label: "> 4", Color: "#FFEDA0"}}, cc.Legend())
}

package geom

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"choromap/internal/choropleth"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box spans a non-empty area.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// Feature is one record of a dataset: its geometry parts plus attributes.
type Feature struct {
	Properties choropleth.Properties
	Points     [][2]float64
	Lines      [][][2]float64
	Polygons   [][][][2]float64 // polygons with rings (first outer, following holes)
}

// Vertices calls fn for every coordinate of the feature.
func (f Feature) Vertices(fn func(pt [2]float64)) {
	for _, p := range f.Points {
		fn(p)
	}
	for _, ls := range f.Lines {
		for _, p := range ls {
			fn(p)
		}
	}
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				fn(p)
			}
		}
	}
}

func (f Feature) empty() bool {
	return len(f.Points) == 0 && len(f.Lines) == 0 && len(f.Polygons) == 0
}

// Collection is a minimal feature container for rendering
type Collection struct {
	Features []Feature
	BBox     BBox
	n        int
}

// Add appends a feature and grows the bbox to cover it. Empty features are dropped.
func (c *Collection) Add(f Feature) {
	if f.empty() {
		return
	}
	f.Vertices(c.extend)
	c.Features = append(c.Features, f)
}

func (c *Collection) extend(pt [2]float64) {
	if c.n == 0 {
		c.BBox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
	} else {
		c.BBox.MinX = min(c.BBox.MinX, pt[0])
		c.BBox.MinY = min(c.BBox.MinY, pt[1])
		c.BBox.MaxX = max(c.BBox.MaxX, pt[0])
		c.BBox.MaxY = max(c.BBox.MaxY, pt[1])
	}
	c.n++
}

// Counts returns the number of points, line strings and polygons.
func (c Collection) Counts() (pts, lines, polys int) {
	for _, f := range c.Features {
		pts += len(f.Points)
		lines += len(f.Lines)
		polys += len(f.Polygons)
	}
	return pts, lines, polys
}

// NumericProperties lists, sorted, the property keys holding a number on at
// least one feature.
func (c Collection) NumericProperties() []string {
	seen := map[string]bool{}
	for _, f := range c.Features {
		for k := range f.Properties {
			if seen[k] {
				continue
			}
			if _, ok := choropleth.Number(f.Properties, k); ok {
				seen[k] = true
			}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values collects the numeric values of key across all features.
func (c Collection) Values(key string) []float64 {
	var out []float64
	for _, f := range c.Features {
		if v, ok := choropleth.Number(f.Properties, key); ok {
			out = append(out, v)
		}
	}
	return out
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".csv", ".kml", ".wkt":
		return true
	}
	return false
}

// Load reads any supported file based on its extension.
func Load(path string) (Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Collection{}, err
		}
		return ParseWKT(string(data))
	}
	return Collection{}, errors.New("unsupported file: " + filepath.Ext(path))
}

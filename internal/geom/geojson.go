package geom

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
)

// LoadGeo reads a GeoJSON file and returns its features with properties.
// Numbers are kept as json.Number so integer attributes stay exact.
func LoadGeo(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
func ParseGeoJSON(data []byte) (Collection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Collection{}, err
	}
	var c Collection
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		c.Add(parseFeature(raw))
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					c.Add(parseFeature(fm))
				}
			}
		}
	default:
		if len(raw) > 0 {
			var f Feature
			walkGeom(&f, raw)
			c.Add(f)
		}
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("no geometries found")
	}
	return c, nil
}

func parseFeature(fm map[string]any) Feature {
	var f Feature
	if pm, ok := fm["properties"].(map[string]any); ok {
		f.Properties = pm
	}
	if g, ok := fm["geometry"].(map[string]any); ok {
		walkGeom(&f, g)
	}
	return f
}

func walkGeom(f *Feature, g map[string]any) {
	gt, _ := g["type"].(string)
	coords := g["coordinates"]
	switch gt {
	case "Point":
		if pt, ok := parsePoint(coords); ok {
			f.Points = append(f.Points, pt)
		}
	case "MultiPoint":
		f.Points = append(f.Points, parseArrayPoints(coords)...)
	case "LineString":
		if ls := parseArrayPoints(coords); len(ls) > 0 {
			f.Lines = append(f.Lines, ls)
		}
	case "MultiLineString":
		for _, el := range asArray(coords) {
			if ls := parseArrayPoints(el); len(ls) > 0 {
				f.Lines = append(f.Lines, ls)
			}
		}
	case "Polygon":
		if poly := parsePolygon(coords); len(poly) > 0 {
			f.Polygons = append(f.Polygons, poly)
		}
	case "MultiPolygon":
		for _, el := range asArray(coords) {
			if poly := parsePolygon(el); len(poly) > 0 {
				f.Polygons = append(f.Polygons, poly)
			}
		}
	case "GeometryCollection":
		for _, el := range asArray(g["geometries"]) {
			if gm, ok := el.(map[string]any); ok {
				walkGeom(f, gm)
			}
		}
	}
}

func asArray(v any) []any {
	arr, _ := v.([]any)
	return arr
}

func coord(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func parsePoint(v any) ([2]float64, bool) {
	if a := asArray(v); len(a) >= 2 {
		lon, lok := coord(a[0])
		lat, aok := coord(a[1])
		if lok && aok {
			return [2]float64{lon, lat}, true
		}
	}
	return [2]float64{}, false
}

func parseArrayPoints(v any) [][2]float64 {
	var pts [][2]float64
	for _, el := range asArray(v) {
		if pt, ok := parsePoint(el); ok {
			pts = append(pts, pt)
		}
	}
	return pts
}

func parsePolygon(v any) [][][2]float64 {
	var poly [][][2]float64
	for _, ring := range asArray(v) {
		if ls := parseArrayPoints(ring); len(ls) > 0 {
			poly = append(poly, ls)
		}
	}
	return poly
}

package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT parses a subset of WKT into a single feature without properties.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...), POLYGON((x y, ...), (...))
func ParseWKT(wkt string) (Collection, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Collection{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var f Feature
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		body, err := between(s, "(", ")", "multipoint")
		if err != nil {
			return Collection{}, err
		}
		// MULTIPOINT((1 2), (3 4)) and MULTIPOINT(1 2, 3 4) are both valid
		body = strings.NewReplacer("(", "", ")", "").Replace(body)
		f.Points = parseTuples(body)
	case strings.HasPrefix(up, "POINT"):
		body, err := between(s, "(", ")", "point")
		if err != nil {
			return Collection{}, err
		}
		f.Points = parseTuples(body)
	case strings.HasPrefix(up, "LINESTRING"):
		body, err := between(s, "(", ")", "linestring")
		if err != nil {
			return Collection{}, err
		}
		if ls := parseTuples(body); len(ls) > 0 {
			f.Lines = append(f.Lines, ls)
		}
	case strings.HasPrefix(up, "POLYGON"):
		body, err := between(s, "((", "))", "polygon")
		if err != nil {
			return Collection{}, err
		}
		// normalize spaces around ring separators
		norm := strings.NewReplacer("), (", "),(", ") , (", "),(", ") ,(", "),(").Replace(body)
		var poly [][][2]float64
		for _, rp := range strings.Split(norm, "),(") {
			if ring := parseTuples(rp); len(ring) > 0 {
				poly = append(poly, ring)
			}
		}
		if len(poly) > 0 {
			f.Polygons = append(f.Polygons, poly)
		}
	default:
		return Collection{}, errors.New("unsupported wkt type")
	}
	var c Collection
	c.Add(f)
	if len(c.Features) == 0 {
		return Collection{}, errors.New("wkt: no coordinates parsed")
	}
	return c, nil
}

func between(s, opening, closing, kind string) (string, error) {
	i := strings.Index(s, opening)
	j := strings.LastIndex(s, closing)
	if i < 0 || j <= i {
		return "", errors.New("wkt " + kind + ": invalid")
	}
	return s[i+len(opening) : j], nil
}

func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}

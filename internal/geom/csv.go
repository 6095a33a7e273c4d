package geom

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"

	"choromap/internal/choropleth"
)

// LoadCSV reads a CSV with latitude/longitude columns. Every row becomes a
// point feature; the other columns become its properties.
// Column detection: lat|latitude|y and lon|lng|long|longitude|x (case-insensitive).
func LoadCSV(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Collection{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return Collection{}, err
	}
	if len(recs) == 0 {
		return Collection{}, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Collection{}, errors.New("csv: latitude/longitude columns not found")
	}
	var c Collection
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		props := choropleth.Properties{}
		for i, h := range header {
			if i == idxLat || i == idxLon || i >= len(row) {
				continue
			}
			props[h] = row[i]
		}
		c.Add(Feature{Properties: props, Points: [][2]float64{{lon, lat}}})
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("csv: no valid points parsed")
	}
	return c, nil
}

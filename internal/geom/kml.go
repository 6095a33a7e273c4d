package geom

import (
	"encoding/xml"
	"errors"
	"os"
	"strconv"
	"strings"

	"choromap/internal/choropleth"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPlacemark struct {
	Name       string      `xml:"name"`
	Data       []kmlData   `xml:"ExtendedData>Data"`
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   []kmlPlacemark `xml:"Document>Placemark"`
	Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
}

// LoadKML extracts Placemarks (Point, LineString, Polygon) from a KML file.
// The placemark name and ExtendedData values become properties.
func LoadKML(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Collection{}, err
	}
	var c Collection
	all := append(append(doc.Placemarks, doc.Document...), doc.Folders...)
	for _, pm := range all {
		f := Feature{Properties: choropleth.Properties{}}
		if pm.Name != "" {
			f.Properties["name"] = pm.Name
		}
		for _, d := range pm.Data {
			f.Properties[d.Name] = strings.TrimSpace(d.Value)
		}
		if pm.Point != nil {
			f.Points = parseKMLCoords(pm.Point.Coordinates)
		}
		if pm.LineString != nil {
			if ls := parseKMLCoords(pm.LineString.Coordinates); len(ls) > 0 {
				f.Lines = append(f.Lines, ls)
			}
		}
		if pm.Polygon != nil {
			outer := parseKMLCoords(pm.Polygon.Outer.Coordinates)
			if len(outer) > 0 {
				poly := [][][2]float64{outer}
				for _, in := range pm.Polygon.Inner {
					if ring := parseKMLCoords(in.Coordinates); len(ring) > 0 {
						poly = append(poly, ring)
					}
				}
				f.Polygons = append(f.Polygons, poly)
			}
		}
		c.Add(f)
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("kml: no placemarks found")
	}
	return c, nil
}

// parseKMLCoords reads "lon,lat[,alt]" tuples separated by whitespace; altitude is ignored.
func parseKMLCoords(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}

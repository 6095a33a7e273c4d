package geom

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statesJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "A", "density": 15},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[2,0],[2,2],[0,2],[0,0]]]}},
    {"type": "Feature", "properties": {"name": "B", "density": 1200.5},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[3,3],[4,3],[4,4],[3,3]]], [[[5,5],[6,5],[6,6],[5,5]]]]}},
    {"type": "Feature", "properties": {"name": "C"},
     "geometry": {"type": "LineString", "coordinates": [[-1,-1],[0,1]]}},
    {"type": "Feature", "properties": null, "geometry": null}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadGeo(t *testing.T) {
	c, err := LoadGeo(writeFile(t, "states.geojson", statesJSON))
	require.NoError(t, err)
	require.Len(t, c.Features, 3)

	pts, lines, polys := c.Counts()
	assert.Equal(t, 0, pts)
	assert.Equal(t, 1, lines)
	assert.Equal(t, 3, polys)
	assert.Equal(t, BBox{MinX: -1, MinY: -1, MaxX: 6, MaxY: 6}, c.BBox)

	assert.Equal(t, json.Number("15"), c.Features[0].Properties["density"])
	assert.Equal(t, []string{"density"}, c.NumericProperties())
	assert.Equal(t, []float64{15, 1200.5}, c.Values("density"))
}

func TestParseGeoJSONBareGeometry(t *testing.T) {
	c, err := ParseGeoJSON([]byte(`{"type":"MultiPoint","coordinates":[[1,2],[3,4]]}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Len(t, c.Features[0].Points, 2)
	assert.Nil(t, c.Features[0].Properties)
	assert.True(t, c.BBox.Valid())
}

func TestParseGeoJSONGeometryCollection(t *testing.T) {
	c, err := ParseGeoJSON([]byte(`{"type":"Feature","properties":{"v":1},"geometry":{"type":"GeometryCollection","geometries":[
		{"type":"Point","coordinates":[1,1]},{"type":"LineString","coordinates":[[0,0],[1,1]]}]}}`))
	require.NoError(t, err)
	require.Len(t, c.Features, 1)
	assert.Len(t, c.Features[0].Points, 1)
	assert.Len(t, c.Features[0].Lines, 1)
}

func TestParseGeoJSONErrors(t *testing.T) {
	_, err := ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`))
	assert.Error(t, err)
	_, err = ParseGeoJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "pts.csv", "name,Latitude,Longitude,density\na,10,20,5\nb,11,21,50\nbad,x,y,1\n")
	c, err := LoadCSV(p)
	require.NoError(t, err)
	require.Len(t, c.Features, 2)
	assert.Equal(t, [][2]float64{{20, 10}}, c.Features[0].Points)
	assert.Equal(t, "5", c.Features[0].Properties["density"])
	assert.NotContains(t, c.Features[0].Properties, "Latitude")
	assert.Equal(t, []string{"density"}, c.NumericProperties())
	assert.Equal(t, BBox{MinX: 20, MinY: 10, MaxX: 21, MaxY: 11}, c.BBox)

	_, err = LoadCSV(writeFile(t, "nocols.csv", "a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Placemark>
    <name>Park</name>
    <ExtendedData><Data name="visitors"><value>320</value></Data></ExtendedData>
    <Point><coordinates>10.5,20.25,0</coordinates></Point>
  </Placemark>
  <Placemark>
    <name>Block</name>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
  </Placemark>
</Document>
</kml>`
	c, err := LoadKML(writeFile(t, "doc.kml", doc))
	require.NoError(t, err)
	require.Len(t, c.Features, 2)
	assert.Equal(t, "Park", c.Features[0].Properties["name"])
	assert.Equal(t, "320", c.Features[0].Properties["visitors"])
	assert.Equal(t, [][2]float64{{10.5, 20.25}}, c.Features[0].Points)
	assert.Len(t, c.Features[1].Polygons, 1)
}

func TestParseWKT(t *testing.T) {
	tests := []struct {
		wkt               string
		pts, lines, polys int
	}{
		{"POINT(1 2)", 1, 0, 0},
		{"MULTIPOINT(1 2, 3 4)", 2, 0, 0},
		{"MULTIPOINT((1 2), (3 4))", 2, 0, 0},
		{"LINESTRING(0 0, 1 1, 2 0)", 0, 1, 0},
		{"POLYGON((0 0, 4 0, 4 4, 0 0), (1 1, 2 1, 2 2, 1 1))", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.wkt, func(t *testing.T) {
			c, err := ParseWKT(tt.wkt)
			require.NoError(t, err)
			pts, lines, polys := c.Counts()
			assert.Equal(t, tt.pts, pts)
			assert.Equal(t, tt.lines, lines)
			assert.Equal(t, tt.polys, polys)
		})
	}

	c, err := ParseWKT("POLYGON((0 0, 4 0, 4 4, 0 0), (1 1, 2 1, 2 2, 1 1))")
	require.NoError(t, err)
	assert.Len(t, c.Features[0].Polygons[0], 2)

	for _, bad := range []string{"", "CIRCLE(1 2)", "POINT 1 2", "POINT()"} {
		_, err := ParseWKT(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(writeFile(t, "shape.wkt", "LINESTRING(0 0, 1 1)"))
	require.NoError(t, err)
	assert.Len(t, c.Features, 1)

	_, err = Load(writeFile(t, "shape.shp", "x"))
	assert.Error(t, err)

	assert.True(t, Supported("a.GeoJSON"))
	assert.False(t, Supported("a.shp"))
}

package tui

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"choromap/internal/choropleth"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded features
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		// Normalize each row to match the number of table columns
		for len(row) < len(tcols) {
			row = append(row, "")
		}
		trows = append(trows, table.Row(row[:len(tcols)]))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions the property keys of all features and returns
// (columns, rows). With the choropleth active a class column is appended.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if len(m.data.Features) == 0 {
		return []string{}, [][]string{}
	}
	seen := map[string]bool{}
	var order []string
	for _, f := range m.data.Features {
		keys := make([]string, 0, len(f.Properties))
		for k := range f.Properties {
			if !seen[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			seen[k] = true
			order = append(order, k)
		}
	}
	if len(order) == 0 {
		if m.selPath == "" {
			// pasted WKT: no attributes available
			return []string{}, [][]string{}
		}
		pts, lines, polys := m.data.Counts()
		bb := m.data.BBox
		cols := []string{"name", "path", "bbox", "points", "lines", "polygons"}
		vals := []string{filepath.Base(m.selPath), m.selPath, fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY), fmt.Sprintf("%d", pts), fmt.Sprintf("%d", lines), fmt.Sprintf("%d", polys)}
		return cols, [][]string{vals}
	}
	classify := m.choroActive()
	cols := order
	if classify {
		cols = append(append([]string{}, order...), "class")
	}
	rows := make([][]string, 0, len(m.data.Features))
	for _, f := range m.data.Features {
		vals := make([]string, 0, len(cols))
		for _, k := range order {
			vals = append(vals, formatValue(f.Properties[k]))
		}
		if classify {
			label := ""
			if v, ok := choropleth.Number(f.Properties, m.choro.ColorProp); ok {
				label = m.choro.Label(v)
			}
			vals = append(vals, label)
		}
		rows = append(rows, vals)
	}
	return cols, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}

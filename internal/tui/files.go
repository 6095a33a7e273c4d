package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"choromap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads supported formats into the model.
func (m *Model) loadPath(p string) {
	c, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		m.logger.Warn("load failed", zap.String("path", p), zap.Error(err))
		return
	}
	m.selPath = p
	m.setData(c)
	m.status = "loaded: " + filepath.Base(p) + "  " + m.countsLabel()
	if !m.choroOK {
		m.status += "  choropleth off"
	}
	m.logger.Info("loaded",
		zap.String("path", p),
		zap.Int("features", len(c.Features)),
		zap.Strings("numeric_props", m.props))
	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// setData swaps in a new dataset, resets the viewport and reclassifies.
func (m *Model) setData(c geom.Collection) {
	m.data = c
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	pts, lines, polys := c.Counts()
	// prefer polys > lines > points for visibility
	m.showPolys = polys > 0
	m.showLines = lines > 0 && !m.showPolys
	m.showPoints = pts > 0 && !m.showPolys
	m.resolveChoropleth()
}

func (m Model) countsLabel() string {
	pts, lines, polys := m.data.Counts()
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d", pts, lines, polys)
}

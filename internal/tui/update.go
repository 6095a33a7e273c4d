package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"choromap/internal/choropleth"
	"choromap/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "c":
			m.showChoro = !m.showChoro
			switch {
			case !m.showChoro:
				m.status = "choropleth: off"
			case m.choroOK:
				m.status = "choropleth: " + m.choro.ColorProp
			default:
				m.status = "choropleth: no usable property"
			}
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "]":
			m.cycleProp(1)
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "[":
			m.cycleProp(-1)
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			m.inspect()
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.trackHover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.status = "view mode"
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		c, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(c)
		m.status = "rendered WKT  " + m.countsLabel()
		m.logger.Debug("rendered wkt", zap.Int("features", len(c.Features)))
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// inspect opens a popup describing the feature nearest the viewport center.
func (m *Model) inspect() {
	idx, lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	bb := m.data.BBox
	f := m.data.Features[idx]
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
		m.countsLabel(),
		fmt.Sprintf("feature: #%d", idx+1),
		fmt.Sprintf("nearest: lon=%.6f lat=%.6f", lon, lat),
	}
	if label, ok := f.Properties["name"]; ok {
		meta = append(meta, "feature name: "+formatValue(label))
	}
	if m.choroActive() {
		st, err := m.choro.StyleFor(f.Properties)
		if err != nil {
			m.logger.Warn("classify failed", zap.Int("feature", idx), zap.Error(err))
			meta = append(meta, "class error: "+err.Error())
		}
		if v, ok := choropleth.Number(f.Properties, m.choro.ColorProp); ok {
			meta = append(meta,
				fmt.Sprintf("%s: %g", m.choro.ColorProp, v),
				"class: "+orDash(m.choro.Label(v)))
		} else {
			meta = append(meta, m.choro.ColorProp+": -")
		}
		meta = append(meta, "fill: "+orDash(st.FillColor))
	}
	meta = append(meta, "crs: unknown", "datum: unknown")
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// trackHover records the mouse cell and snaps the highlight to the nearest vertex.
func (m *Model) trackHover(cx, cy int) {
	f := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, f.contentH-2)
	}
	if cx < f.mapX || cx >= f.mapX+f.mapW || cy < f.mapY || cy >= f.mapY+f.mapH {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	m.hoverCellX = cx - f.mapX
	m.hoverCellY = cy - f.mapY
	if lon, lat, ok := m.cellToLonLat(m.hoverCellX, m.hoverCellY, f.mapW, f.mapH); ok {
		m.hoverHasGeo = true
		m.hoverLon = lon
		m.hoverLat = lat
	} else {
		m.hoverHasGeo = false
	}
	// find nearest vertex using micro coords
	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	for _, feat := range m.data.Features {
		feat.Vertices(func(p [2]float64) {
			mx, my, ok := m.screenXYMicro(p[0], p[1], f.mapW, f.mapH)
			if !ok {
				return
			}
			dx := mx - hxMic
			dy := my - hyMic
			if d := dx*dx + dy*dy; d < best {
				best = d
				bx, by = mx, my
			}
		})
	}
	m.hoverMicX, m.hoverMicY = bx, by
}

package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// frame is the screen geometry shared by View and mouse handling.
type frame struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
	legend             bool
}

func (m Model) layout() frame {
	var f frame
	f.contentH = max(4, m.height-headerHeight-footerHeight)
	f.contentW = max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		f.mapX = sidebarWidth + 1
	}
	f.mapY = headerHeight
	f.mapW = max(10, f.contentW-sw-1)
	f.mapH = f.contentH
	if m.choroActive() && !m.showAttrs && f.mapW-legendWidth >= 20 {
		f.legend = true
		f.mapW -= legendWidth
	}
	return f
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	bb := m.data.BBox
	if !bb.Valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := bb.MinX + nx*(bb.MaxX-bb.MinX)
	lat := bb.MinY + ny*(bb.MaxY-bb.MinY)
	return lon, lat, true
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	styles := m.featureStyles()
	_, nLines, nPolys := m.data.Counts()

	for i, f := range m.data.Features {
		var fill, stroke lipgloss.Color
		if styles != nil {
			fill = termColor(styles[i].FillColor)
			stroke = termColor(styles[i].Color)
		}
		if m.showPolys {
			for _, poly := range f.Polygons {
				m.drawPolygon(br, poly, w, h, fill, stroke)
			}
		}
		// points only when the dataset has no lines or polygons
		if m.showPoints && nLines == 0 && nPolys == 0 && m.data.BBox.Valid() {
			br.setPen(fill)
			for _, p := range f.Points {
				if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
					br.setPixel(mx, my)
				}
			}
		}
		if m.showLines {
			br.setPen(fill)
			for _, ls := range f.Lines {
				var prev *[2]int
				for _, p := range ls {
					mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
					if !ok {
						continue
					}
					if prev != nil {
						br.drawLineMicro(prev[0], prev[1], mx, my)
					}
					prev = &[2]int{mx, my}
				}
			}
		}
	}

	runes, cols := br.cells()
	// Hover highlight: an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(runes) && cx >= 0 && cx < len(runes[cy]) {
			runes[cy][cx] = '◯'
			cols[cy][cx] = lipgloss.Color("#FFA500")
		}
	}
	lines := make([]string, len(runes))
	for y := range runes {
		lines[y] = paintRow(runes[y], cols[y])
	}
	return strings.Join(lines, "\n")
}

// drawPolygon draws every ring's edges in the stroke color, then fills the
// outer ring (even-odd per micro scanline, holes ignored). Cells touched by
// the fill take the fill color.
func (m Model) drawPolygon(br *brailleBuf, poly [][][2]float64, w, h int, fill, stroke lipgloss.Color) {
	var rings [][][2]int
	for _, ring := range poly {
		var sm [][2]int
		for _, p := range ring {
			if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
				sm = append(sm, [2]int{mx, my})
			}
		}
		if len(sm) >= 3 {
			rings = append(rings, sm)
		}
	}
	if len(rings) == 0 {
		return
	}
	if stroke != "" || fill == "" {
		br.setPen(stroke)
	} else {
		br.setPen(fill)
	}
	for _, r := range rings {
		for i := 0; i < len(r); i++ {
			a := r[i]
			b := r[(i+1)%len(r)]
			br.drawLineMicro(a[0], a[1], b[0], b[1])
		}
	}
	br.setPen(fill)
	outer := rings[0]
	for yMic := 0; yMic < h*4; yMic++ {
		var xs []int
		for i := 0; i < len(outer); i++ {
			a := outer[i]
			b := outer[(i+1)%len(outer)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], w*2-1); xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	bb := m.data.BBox
	if !bb.Valid() {
		return 0, 0, false
	}
	nx := (lon - bb.MinX) / (bb.MaxX - bb.MinX)
	ny := (lat - bb.MinY) / (bb.MaxY - bb.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to current screen integer coordinates considering zoom and pan.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	bb := m.data.BBox
	if !bb.Valid() {
		return 0, 0, false
	}
	nx := (lon - bb.MinX) / (bb.MaxX - bb.MinX)
	ny := (lat - bb.MinY) / (bb.MaxY - bb.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

// inspectNearest finds the feature vertex closest to the viewport center.
func (m Model) inspectNearest() (idx int, lon, lat float64, ok bool) {
	w, h := 80, 24
	if m.width > 0 && m.height > 0 {
		f := m.layout()
		w, h = f.mapW, f.mapH
	}
	cx, cy := w/2, h/2
	bestD := 1<<31 - 1
	idx = -1
	for i, f := range m.data.Features {
		f.Vertices(func(p [2]float64) {
			sx, sy, ok2 := m.screenXY(p[0], p[1], w, h)
			if !ok2 {
				return
			}
			dx := sx - cx
			dy := sy - cy
			if d := dx*dx + dy*dy; d < bestD {
				bestD = d
				idx, lon, lat = i, p[0], p[1]
			}
		})
	}
	return idx, lon, lat, idx >= 0
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	// per-cell foreground; the last pixel drawn into a cell decides it
	col [][]lipgloss.Color
	pen lipgloss.Color
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	col := make([][]lipgloss.Color, h)
	for i := range m {
		m[i] = make([]uint8, w)
		col[i] = make([]lipgloss.Color, w)
	}
	return &brailleBuf{w: w, h: h, m: m, col: col}
}

// setPen selects the color for subsequent pixels; "" draws uncolored.
func (b *brailleBuf) setPen(c lipgloss.Color) { b.pen = c }

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.col[cy][cx] = b.pen
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// cells returns the braille runes and their colors, row by row.
func (b *brailleBuf) cells() ([][]rune, [][]lipgloss.Color) {
	runes := make([][]rune, b.h)
	cols := make([][]lipgloss.Color, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		runes[y] = row
		cols[y] = append([]lipgloss.Color(nil), b.col[y]...)
	}
	return runes, cols
}

// paintRow renders a row, grouping runs of equal color into one styled span.
func paintRow(row []rune, cols []lipgloss.Color) string {
	var sb strings.Builder
	start := 0
	flush := func(end int) {
		if end <= start {
			return
		}
		seg := string(row[start:end])
		if c := cols[start]; c != "" {
			seg = lipgloss.NewStyle().Foreground(c).Render(seg)
		}
		sb.WriteString(seg)
	}
	for x := 1; x <= len(row); x++ {
		if x == len(row) || cols[x] != cols[start] {
			flush(x)
			start = x
		}
	}
	return sb.String()
}

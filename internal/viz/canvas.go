package viz

import "math"

// Cell is one character position of the frame buffer. Fade is the
// remaining-life fraction of the brightest particle plotted into it.
type Cell struct {
	Set  bool
	Fade float64
	Hue  int
}

type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
	}
	return c
}

// Plot maps a continuous position to the cell containing it, clamped to the
// canvas. A cell keeps the brightest particle that lands on it.
func (c *Canvas) Plot(x, y, fade float64, hue int) bool {
	if c.Width == 0 || c.Height == 0 || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	col := clamp(int(math.Floor(x)), 0, c.Width-1)
	row := clamp(int(math.Floor(y)), 0, c.Height-1)

	cell := &c.Grid[row][col]
	if cell.Set && cell.Fade >= fade {
		return false
	}
	*cell = Cell{Set: true, Fade: fade, Hue: hue}
	return true
}

func (c *Canvas) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return Cell{}
	}
	return c.Grid[row][col]
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = Cell{}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

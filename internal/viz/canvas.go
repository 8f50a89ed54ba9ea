package viz

import "strings"

// Braille patterns: 2x4 dots per cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille sub-pixel canvas with a cell-level marker overlay.
// Lines draw into the braille layer; markers (pinned particles, the drag
// handle, the cut cursor) replace whole cells so they stay readable on
// top of the mesh.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	marks         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		marks:  make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.marks[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights one sub-pixel. The canvas is (Width*2) x (Height*4)
// sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark overwrites the cell containing sub-pixel (x, y) with r.
func (c *Canvas) Mark(x, y int, r rune) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.marks[row][col] = r
}

// Clear resets both layers.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.marks[i][j] = 0
		}
	}
}

// DrawLine draws a sub-pixel line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Cells returns the merged cell grid, markers over braille, for
// screenshot export.
func (c *Canvas) Cells() [][]rune {
	cells := make([][]rune, c.Height)
	for i := range cells {
		cells[i] = make([]rune, c.Width)
		for j := range cells[i] {
			if m := c.marks[i][j]; m != 0 {
				cells[i][j] = m
			} else {
				cells[i][j] = c.Grid[i][j]
			}
		}
	}
	return cells
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if m := c.marks[i][j]; m != 0 {
				b.WriteRune(m)
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

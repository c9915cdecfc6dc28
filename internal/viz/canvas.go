package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
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

const brailleBlank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights a pixel in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels; anything outside is ignored.
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

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Dot draws a 2x2 marker, large enough to stand out from trails.
func (c *Canvas) Dot(x, y int) {
	c.Set(x, y)
	c.Set(x+1, y)
	c.Set(x, y+1)
	c.Set(x+1, y+1)
}

// DrawLine draws a line using Bresenham's algorithm
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps world coordinates onto canvas sub-pixels. It only grows, so
// the picture does not jump when a body slows down.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	empty      bool
}

func NewViewport() *Viewport {
	return &Viewport{empty: true}
}

// Include grows the viewport to contain (x, y). Non-finite points are ignored.
func (v *Viewport) Include(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	if v.empty {
		v.MinX, v.MaxX, v.MinY, v.MaxY = x, x, y, y
		v.empty = false
		return
	}
	v.MinX = math.Min(v.MinX, x)
	v.MaxX = math.Max(v.MaxX, x)
	v.MinY = math.Min(v.MinY, y)
	v.MaxY = math.Max(v.MaxY, y)
}

// Project returns sub-pixel coordinates for (x, y) on a canvas, with y
// pointing up and a 5% margin on every side.
func (v *Viewport) Project(c *Canvas, x, y float64) (int, int) {
	cw, ch := float64(c.Width*2-1), float64(c.Height*4-1)

	spanX, spanY := v.MaxX-v.MinX, v.MaxY-v.MinY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	padX, padY := spanX*0.05, spanY*0.05

	px := (x - v.MinX + padX) / (spanX + 2*padX) * cw
	py := (1 - (y-v.MinY+padY)/(spanY+2*padY)) * ch
	return int(math.Round(px)), int(math.Round(py))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

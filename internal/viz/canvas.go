package viz

import (
	"math"
	"strings"

	"github.com/ellipsim/ellipsim/internal/geom"
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
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights the sub-pixel at (x, y). The canvas size in sub-pixels is
// (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
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

// Projection maps Cartesian plane coordinates onto canvas sub-pixels,
// fitting the ellipse with a margin and compensating terminal cell aspect.
type Projection struct {
	scale    float64
	cx, cy   int
	yStretch float64
}

// NewProjection fits the given shape into the canvas.
func (c *Canvas) NewProjection(shape geom.Ellipse) Projection {
	cw := float64(c.Width * 2)
	ch := float64(c.Height * 4)
	// A braille sub-pixel is about twice as tall as wide.
	yStretch := 0.5
	sx := cw / (2.2 * shape.A)
	sy := ch / (2.2 * shape.B * yStretch)
	scale := math.Min(sx, sy*yStretch)
	return Projection{
		scale:    scale,
		cx:       int(cw) / 2,
		cy:       int(ch) / 2,
		yStretch: yStretch,
	}
}

func (p Projection) Map(x, y float64) (int, int) {
	return p.cx + int(x*p.scale), p.cy - int(y*p.scale*p.yStretch)
}

// DrawEllipse traces the curve outline.
func (c *Canvas) DrawEllipse(shape geom.Ellipse, p Projection) {
	const samples = 480
	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / samples
		x, y := shape.Position(theta)
		px, py := p.Map(x, y)
		c.Set(px, py)
	}
}

// DrawParticle marks a particle as a small filled blob.
func (c *Canvas) DrawParticle(shape geom.Ellipse, p Projection, theta float64) {
	x, y := shape.Position(theta)
	px, py := p.Map(x, y)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			c.Set(px+dx, py+dy)
		}
	}
}

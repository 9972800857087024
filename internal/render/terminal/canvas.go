// Package terminal renders the scene into character cells with tcell.
// One cell is one screen unit: the game's view scales the world viewport to
// the terminal's columns and rows.
package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/umbra/internal/render"
)

type cell struct {
	ch rune
	fg color.RGBA
	bg color.RGBA
}

// Canvas is an in-memory grid of cells. Drawing only touches the grid;
// Flush copies it to a screen.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize discards the contents when the size changes.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height && c.cells != nil {
		return
	}
	c.width, c.height = max(width, 0), max(height, 0)
	c.cells = make([]cell, c.width*c.height)
	c.Clear()
}

// Size returns the width and height in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Fill sets every cell's background to clr and erases any glyphs.
func (c *Canvas) Fill(clr color.Color) {
	bg := toRGBA(clr)
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', bg: bg}
	}
}

// Clear resets every cell to a blank black cell.
func (c *Canvas) Clear() {
	c.Fill(color.Black)
}

// Cell returns the glyph and background color at (x, y).
func (c *Canvas) Cell(x, y int) (rune, color.RGBA) {
	if !c.inside(x, y) {
		return 0, color.RGBA{}
	}
	cl := c.cells[y*c.width+x]
	return cl.ch, cl.bg
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// paint blends clr over the background of (x, y).
func (c *Canvas) paint(x, y int, clr color.RGBA) {
	if !c.inside(x, y) {
		return
	}
	cl := &c.cells[y*c.width+x]
	cl.bg = over(clr, cl.bg)
}

func (c *Canvas) put(x, y int, ch rune, fg color.RGBA) {
	if !c.inside(x, y) {
		return
	}
	cl := &c.cells[y*c.width+x]
	cl.ch, cl.fg = ch, fg
}

// DrawTriangles paints every cell whose center falls inside a triangle. A
// triangle takes the color of its first vertex.
func (c *Canvas) DrawTriangles(vertices []render.Vertex, indices []uint16, _ *render.DrawTrianglesOptions) {
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, d := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		c.fillTriangle(a, b, d, a.Color())
	}
}

func (c *Canvas) fillTriangle(a, b, d render.Vertex, clr color.RGBA) {
	minX := int(math.Floor(float64(min(a.DstX, b.DstX, d.DstX))))
	maxX := int(math.Ceil(float64(max(a.DstX, b.DstX, d.DstX))))
	minY := int(math.Floor(float64(min(a.DstY, b.DstY, d.DstY))))
	maxY := int(math.Ceil(float64(max(a.DstY, b.DstY, d.DstY))))

	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, c.width-1), min(maxY, c.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			if insideTriangle(a, b, d, px, py) {
				c.paint(x, y, clr)
			}
		}
	}
}

// insideTriangle accepts either winding.
func insideTriangle(a, b, d render.Vertex, px, py float32) bool {
	e1 := edge(a, b, px, py)
	e2 := edge(b, d, px, py)
	e3 := edge(d, a, px, py)
	return (e1 >= 0 && e2 >= 0 && e3 >= 0) || (e1 <= 0 && e2 <= 0 && e3 <= 0)
}

func edge(a, b render.Vertex, px, py float32) float32 {
	return (b.DstX-a.DstX)*(py-a.DstY) - (b.DstY-a.DstY)*(px-a.DstX)
}

// Flush copies the canvas to screen.
func (c *Canvas) Flush(screen tcell.Screen) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cl := c.cells[y*c.width+x]
			style := tcell.StyleDefault.
				Background(tcellColor(cl.bg)).
				Foreground(tcellColor(cl.fg))
			ch := cl.ch
			if ch == 0 {
				ch = ' '
			}
			screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toRGBA(clr color.Color) color.RGBA {
	return color.RGBAModel.Convert(clr).(color.RGBA)
}

// over composites premultiplied src over opaque dst.
func over(src, dst color.RGBA) color.RGBA {
	inv := 255 - uint32(src.A)
	mix := func(s, d uint8) uint8 {
		return uint8(uint32(s) + uint32(d)*inv/255)
	}
	return color.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: 0xff}
}

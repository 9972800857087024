package terminal

import (
	"image/color"
	"math"

	"chosenoffset.com/umbra/internal/render"
)

// Renderer implements render.Renderer on Canvas images.
type Renderer struct{}

// NewRenderer creates a cell renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage creates a blank canvas.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewCanvas(width, height)
}

// FillRect paints every cell the rectangle overlaps, so rectangles thinner
// than a cell still show up.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	c := dst.(*Canvas)
	x0 := int(math.Floor(float64(x)))
	y0 := int(math.Floor(float64(y)))
	x1 := int(math.Ceil(float64(x+width))) - 1
	y1 := int(math.Ceil(float64(y+height))) - 1
	rgba := toRGBA(clr)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			c.paint(cx, cy, rgba)
		}
	}
}

// StrokeLine paints the cells along the line. Width is ignored: a terminal
// line is always one cell wide.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, _ float32, clr color.Color) {
	c := dst.(*Canvas)
	rgba := toRGBA(clr)
	dx, dy := float64(x1-x0), float64(y1-y0)
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.paint(int(x0), int(y0), rgba)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.paint(int(math.Floor(float64(x0)+dx*t)), int(math.Floor(float64(y0)+dy*t)), rgba)
	}
}

// FillCircle paints the cells whose centers lie within radius, or the single
// cell under the center when the circle is smaller than a cell.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	c := dst.(*Canvas)
	rgba := toRGBA(clr)
	painted := false
	for cy := int(math.Floor(float64(y - radius))); cy <= int(math.Ceil(float64(y+radius))); cy++ {
		for cx := int(math.Floor(float64(x - radius))); cx <= int(math.Ceil(float64(x+radius))); cx++ {
			ddx, ddy := float32(cx)+0.5-x, float32(cy)+0.5-y
			if ddx*ddx+ddy*ddy <= radius*radius {
				c.paint(cx, cy, rgba)
				painted = true
			}
		}
	}
	if !painted {
		c.paint(int(math.Floor(float64(x))), int(math.Floor(float64(y))), rgba)
	}
}

// DrawText writes text starting at cell (x, y), clipped at the right edge.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	c := dst.(*Canvas)
	fg := toRGBA(clr)
	for _, ch := range text {
		c.put(x, y, ch, fg)
		x++
	}
}

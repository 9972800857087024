// Package snapshot renders the scene off-screen into an RGBA image using the
// x/image vector rasterizer, for PNG export and for tests that need pixels.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"chosenoffset.com/umbra/internal/render"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 32

// Image is an RGBA surface backed by a vector rasterizer.
type Image struct {
	rgba *image.RGBA
	z    *vector.Rasterizer
}

// NewImage creates a transparent image.
func NewImage(width, height int) *Image {
	return &Image{
		rgba: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:    vector.NewRasterizer(width, height),
	}
}

// RGBA returns the backing image.
func (i *Image) RGBA() *image.RGBA {
	return i.rgba
}

// Size returns the width and height of the image.
func (i *Image) Size() (int, int) {
	b := i.rgba.Bounds()
	return b.Dx(), b.Dy()
}

// Fill fills the entire image with the given color.
func (i *Image) Fill(clr color.Color) {
	draw.Draw(i.rgba, i.rgba.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// Clear clears the image to transparent.
func (i *Image) Clear() {
	i.Fill(color.Transparent)
}

// DrawTriangles rasterizes each triangle in its first vertex's color.
func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, _ *render.DrawTrianglesOptions) {
	for n := 0; n+2 < len(indices); n += 3 {
		a, b, c := vertices[indices[n]], vertices[indices[n+1]], vertices[indices[n+2]]
		i.fillPath(a.Color(), [][2]float32{
			{a.DstX, a.DstY},
			{b.DstX, b.DstY},
			{c.DstX, c.DstY},
		})
	}
}

// fillPath fills the closed polygon through points.
func (i *Image) fillPath(clr color.Color, points [][2]float32) {
	if len(points) < 3 {
		return
	}
	w, h := i.Size()
	i.z.Reset(w, h)
	i.z.DrawOp = draw.Over
	i.z.MoveTo(points[0][0], points[0][1])
	for _, p := range points[1:] {
		i.z.LineTo(p[0], p[1])
	}
	i.z.ClosePath()
	i.z.Draw(i.rgba, i.rgba.Bounds(), image.NewUniform(clr), image.Point{})
}

// WritePNG encodes the image as PNG.
func (i *Image) WritePNG(w io.Writer) error {
	if err := png.Encode(w, i.rgba); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG writes the image to path.
func (i *Image) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	if err := i.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Renderer implements render.Renderer on snapshot Images.
type Renderer struct{}

// NewRenderer creates a snapshot renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage creates a transparent image.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

// FillRect draws a filled axis-aligned rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	dst.(*Image).fillPath(clr, [][2]float32{
		{x, y},
		{x + width, y},
		{x + width, y + height},
		{x, y + height},
	})
}

// StrokeLine draws a line as a rectangle strokeWidth wide.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	dx, dy := float64(x1-x0), float64(y1-y0)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := float64(strokeWidth) / 2
	nx, ny := float32(-dy/length*half), float32(dx/length*half)
	dst.(*Image).fillPath(clr, [][2]float32{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	})
}

// FillCircle draws a filled circle approximated by a polygon.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	points := make([][2]float32, circleSegments)
	for n := range points {
		sin, cos := math.Sincos(2 * math.Pi * float64(n) / circleSegments)
		points[n] = [2]float32{x + radius*float32(cos), y + radius*float32(sin)}
	}
	dst.(*Image).fillPath(clr, points)
}

// DrawText draws text with its top-left corner at (x, y) using the basic
// 7x13 bitmap face.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst.(*Image).rgba,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

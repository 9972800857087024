package render

import (
	"image/color"
)

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. The window, terminal and snapshot backends all implement
// it so the scene is drawn by the same code everywhere.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image

	// Vector operations (for drawing shapes)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color)
}

// Image represents a renderable surface that can be drawn to.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// DrawTriangles fills the triangles named by indices. Each vertex carries
	// its own color; backends that cannot blend use the first vertex's color
	// for the whole triangle.
	DrawTriangles(vertices []Vertex, indices []uint16, opts *DrawTrianglesOptions)
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
type Vertex struct {
	DstX   float32
	DstY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// VertexColor sets the vertex color from clr.
func (v *Vertex) VertexColor(clr color.Color) {
	r, g, b, a := clr.RGBA()
	v.ColorR = float32(r) / 0xffff
	v.ColorG = float32(g) / 0xffff
	v.ColorB = float32(b) / 0xffff
	v.ColorA = float32(a) / 0xffff
}

// Color returns the vertex color as a premultiplied RGBA value.
func (v Vertex) Color() color.RGBA {
	return color.RGBA{
		R: uint8(v.ColorR*0xff + 0.5),
		G: uint8(v.ColorG*0xff + 0.5),
		B: uint8(v.ColorB*0xff + 0.5),
		A: uint8(v.ColorA*0xff + 0.5),
	}
}

// InputManager handles input from the user (keyboard, mouse, etc).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyP // Visibility policy toggle
	KeyR // Debug ray toggle
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (typically 60 times per second).
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}

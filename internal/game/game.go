package game

import (
	"errors"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/render"
	"chosenoffset.com/umbra/internal/simulation"
)

// ErrQuit is returned from Update when the player asks to leave.
var ErrQuit = errors.New("quit requested")

// DefaultTPS is the tick rate Update assumes.
const DefaultTPS = 60

// Game drives a World from player input and draws it through a render
// backend.
type Game struct {
	World    *World
	Config   *simulation.Config
	Renderer render.Renderer
	InputMgr render.InputManager
	Palette  Palette

	// Viewport is the world-space window the scene is projected into.
	Viewport shadows.Viewport
	// TrackWindow resizes the viewport to the window on every Layout.
	TrackWindow bool
	TPS         int

	ScreenWidth  int
	ScreenHeight int

	LastStats  StepStats
	FrameCount int
}

// NewGame creates a game with the configured viewport.
func NewGame(world *World, cfg *simulation.Config, r render.Renderer, input render.InputManager) *Game {
	return &Game{
		World:        world,
		Config:       cfg,
		Renderer:     r,
		InputMgr:     input,
		Palette:      DefaultPalette(),
		Viewport:     cfg.ViewportSize(),
		TPS:          DefaultTPS,
		ScreenWidth:  cfg.Viewport.Width,
		ScreenHeight: cfg.Viewport.Height,
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	dt := 1.0 / float64(g.TPS)

	var intent Intent
	if g.InputMgr != nil {
		if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return ErrQuit
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyP) {
			g.World.TogglePolicy()
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyR) {
			g.Config.Display.Rays = !g.Config.Display.Rays
			g.World.Shadows.SetDebugRays(g.Config.Display.Rays)
		}
		intent = g.readIntent()
	}

	g.LastStats = g.World.Step(dt, intent, g.Viewport)
	g.FrameCount++
	return nil
}

func (g *Game) readIntent() Intent {
	pressed := func(keys ...render.Key) bool {
		for _, k := range keys {
			if g.InputMgr.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return Intent{
		Up:    pressed(render.KeyW, render.KeyUp),
		Down:  pressed(render.KeyS, render.KeyDown),
		Left:  pressed(render.KeyA, render.KeyLeft),
		Right: pressed(render.KeyD, render.KeyRight),
	}
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
		if g.TrackWindow {
			vp := shadows.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)}
			if vp != g.Viewport {
				logging.Logger().Debug("viewport resized", "width", outsideWidth, "height", outsideHeight)
				g.Viewport = vp
			}
		}
	}
	return g.ScreenWidth, g.ScreenHeight
}

package game

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/render"
	"chosenoffset.com/umbra/internal/scene"
	"chosenoffset.com/umbra/internal/sight"
	"chosenoffset.com/umbra/internal/simulation"
	"chosenoffset.com/umbra/internal/world/maploader"
)

var testViewport = shadows.Viewport{Width: 800, Height: 600}

func testSceneData() *maploader.SceneData {
	return &maploader.SceneData{
		Name:   "test",
		Player: maploader.PlayerData{Rect: maploader.Rect{X: -100, Y: 20, Width: 10, Height: 10}},
		Walls: []maploader.WallData{
			{Rect: maploader.Rect{X: -50, Y: 0, Width: 10, Height: 100}},
		},
		NPCs: []maploader.NPCData{
			{Rect: maploader.Rect{X: 0, Y: -30, Width: 10, Height: 10}, Sighted: true},
			{Rect: maploader.Rect{X: 0, Y: 250, Width: 10, Height: 10}, Sighted: true},
		},
		Objects: []maploader.Rect{
			{X: 0, Y: 0, Width: 10, Height: 10},
			{X: 0, Y: 200, Width: 10, Height: 10},
		},
	}
}

func testConfig() *simulation.Config {
	cfg := simulation.DefaultConfig()
	cfg.Viewport.Width, cfg.Viewport.Height = 800, 600
	return cfg
}

func newTestWorld(t *testing.T, cfg *simulation.Config) *World {
	t.Helper()
	w, err := NewWorld(cfg, testSceneData())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

// entities returns the objects and npcs in spawn order.
func entities(w *World, kind scene.Kind) []scene.Entity {
	var out []scene.Entity
	for _, e := range w.Scene.Kinds.Entities() {
		if k, _ := w.Scene.Kinds.Get(e); k == kind {
			out = append(out, e)
		}
	}
	return out
}

func hidden(w *World, e scene.Entity) bool {
	h, _ := w.Scene.Hidden.Get(e)
	return h
}

func TestIntentDirection(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   shadows.Point
	}{
		{"none", Intent{}, shadows.Point{}},
		{"up", Intent{Up: true}, shadows.Point{Y: 1}},
		{"left", Intent{Left: true}, shadows.Point{X: -1}},
		{"opposed", Intent{Up: true, Down: true}, shadows.Point{}},
		{"diagonal", Intent{Up: true, Right: true}, shadows.Point{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.intent.Direction()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestNewWorldRejectsUnknownPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Visibility.Policy = "xray"
	_, err := NewWorld(cfg, testSceneData())
	if !errors.Is(err, sight.ErrUnknownPolicy) {
		t.Errorf("Expected ErrUnknownPolicy, got %v", err)
	}
}

func TestStepBuildsShadowsAndHides(t *testing.T) {
	w := newTestWorld(t, testConfig())

	stats := w.Step(1.0/60, Intent{}, testViewport)
	if stats.Added != 1 {
		t.Errorf("Expected 1 shadow group added, got %d", stats.Added)
	}
	if w.Shadows.Len() != 1 {
		t.Fatalf("Expected 1 shadow group, got %d", w.Shadows.Len())
	}

	objects := entities(w, scene.KindObject)
	if !hidden(w, objects[0]) {
		t.Error("Object behind the wall should be hidden")
	}
	if hidden(w, objects[1]) {
		t.Error("Object clear of the wall should be visible")
	}
	if hidden(w, w.Player) {
		t.Error("The viewer is never hidden")
	}
	if w.Scene.Hidden.Has(w.Player) {
		t.Error("The viewer should not receive a Hidden flag")
	}
}

func TestStepRecomputesOnlyOnChange(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Step(1.0/60, Intent{}, testViewport)

	stats := w.Step(1.0/60, Intent{}, testViewport)
	if stats.Recomputed || stats.Moved || stats.Added != 0 {
		t.Errorf("Idle step should change nothing, got %+v", stats)
	}

	stats = w.Step(0.5, Intent{Up: true}, testViewport)
	if !stats.Moved || !stats.Recomputed {
		t.Errorf("Moving should recompute shadows, got %+v", stats)
	}
	pos, _ := w.Scene.Position(w.Player)
	if pos.X != -100 || pos.Y != 70 {
		t.Errorf("Expected player at (-100, 70), got (%v, %v)", pos.X, pos.Y)
	}

	stats = w.Step(1.0/60, Intent{}, shadows.Viewport{Width: 1024, Height: 768})
	if !stats.Recomputed {
		t.Error("Viewport change should recompute shadows")
	}
}

func TestStepClampsToViewport(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Step(100, Intent{Left: true}, testViewport)

	pos, _ := w.Scene.Position(w.Player)
	if pos.X != -395 || pos.Y != 20 {
		t.Errorf("Expected footprint clamped inside the viewport at (-395, 20), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestStepRefusesOccluderCorner(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Step(1.0/60, Intent{}, testViewport)

	// (-55, 50) is the wall's top-left corner, 50 units right of the player
	w.Scene.SetPosition(w.Player, shadows.Point{X: -105, Y: 50})
	stats := w.Step(0.5, Intent{Right: true}, testViewport)
	if stats.Moved {
		t.Error("Player should not stop on an occluder corner")
	}
	pos, _ := w.Scene.Position(w.Player)
	if pos.X != -105 || pos.Y != 50 {
		t.Errorf("Expected player to stay at (-105, 50), got (%v, %v)", pos.X, pos.Y)
	}
}

func TestStepRemovalIsDeferred(t *testing.T) {
	w := newTestWorld(t, testConfig())
	w.Step(1.0/60, Intent{}, testViewport)

	wall := entities(w, scene.KindWall)[0]
	object := entities(w, scene.KindObject)[0]
	w.Scene.RemoveOccluder(wall)

	stats := w.Step(1.0/60, Intent{}, testViewport)
	if stats.Removed != 1 {
		t.Errorf("Expected 1 group removed, got %d", stats.Removed)
	}
	if w.Shadows.Len() != 0 {
		t.Errorf("Expected no shadow groups, got %d", w.Shadows.Len())
	}
	if !hidden(w, object) {
		t.Error("Visibility runs before removal, so the object is still hidden this tick")
	}

	w.Step(1.0/60, Intent{}, testViewport)
	if hidden(w, object) {
		t.Error("Object should be visible once the wall's shadows are gone")
	}
}

func TestStepRayCastPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.Visibility.Policy = sight.PolicyRayCast
	w := newTestWorld(t, cfg)

	w.Step(1.0/60, Intent{}, testViewport)
	objects := entities(w, scene.KindObject)
	if !hidden(w, objects[0]) {
		t.Error("Object behind the wall should be hidden")
	}
	if hidden(w, objects[1]) {
		t.Error("Object clear of the wall should be visible")
	}
}

func TestStepWatchers(t *testing.T) {
	w := newTestWorld(t, testConfig())

	stats := w.Step(1.0/60, Intent{}, testViewport)
	if stats.Alerted != 1 {
		t.Errorf("Expected 1 alerted npc, got %d", stats.Alerted)
	}

	npcs := entities(w, scene.KindNPC)
	if alerted, _ := w.Scene.Alerted.Get(npcs[0]); alerted {
		t.Error("Npc behind the wall should not see the player")
	}
	if alerted, _ := w.Scene.Alerted.Get(npcs[1]); !alerted {
		t.Error("Npc with a clear line should see the player")
	}
}

func TestTogglePolicy(t *testing.T) {
	w := newTestWorld(t, testConfig())
	if w.Policy() != sight.PolicyShadow {
		t.Fatalf("Expected default policy %q, got %q", sight.PolicyShadow, w.Policy())
	}
	w.TogglePolicy()
	if w.Policy() != sight.PolicyRayCast {
		t.Errorf("Expected %q after toggle, got %q", sight.PolicyRayCast, w.Policy())
	}
	w.TogglePolicy()
	if w.Policy() != sight.PolicyShadow {
		t.Errorf("Expected %q after second toggle, got %q", sight.PolicyShadow, w.Policy())
	}
}

type fakeInput struct {
	pressed map[render.Key]bool
	just    map[render.Key]bool
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.pressed[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.just[key] }

type fakeImage struct {
	w, h      int
	fills     []color.Color
	triangles [][]render.Vertex
}

func (f *fakeImage) Size() (int, int)     { return f.w, f.h }
func (f *fakeImage) Fill(clr color.Color) { f.fills = append(f.fills, clr) }
func (f *fakeImage) Clear()               { f.fills = append(f.fills, color.Transparent) }
func (f *fakeImage) DrawTriangles(vertices []render.Vertex, _ []uint16, _ *render.DrawTrianglesOptions) {
	f.triangles = append(f.triangles, append([]render.Vertex(nil), vertices...))
}

type fakeRenderer struct {
	rects, lines, circles int
	texts                 []string
}

func (f *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w: w, h: h} }
func (f *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	f.rects++
}
func (f *fakeRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
	f.lines++
}
func (f *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {
	f.circles++
}
func (f *fakeRenderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color) {
	f.texts = append(f.texts, text)
}

func TestGameUpdate(t *testing.T) {
	cfg := testConfig()
	input := &fakeInput{pressed: map[render.Key]bool{render.KeyD: true}, just: map[render.Key]bool{render.KeyP: true}}
	g := NewGame(newTestWorld(t, cfg), cfg, &fakeRenderer{}, input)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.World.Policy() != sight.PolicyRayCast {
		t.Errorf("Expected policy toggled to %q, got %q", sight.PolicyRayCast, g.World.Policy())
	}
	if !g.LastStats.Moved {
		t.Error("Holding D should move the player")
	}
	pos, _ := g.World.Scene.Position(g.World.Player)
	if pos.X <= -100 {
		t.Errorf("Expected player to move right, got x=%v", pos.X)
	}

	input.just = map[render.Key]bool{render.KeyEscape: true}
	if err := g.Update(); !errors.Is(err, ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestNewWorldRejectsSpawnOnWallCorner(t *testing.T) {
	data := testSceneData()
	data.Player.X, data.Player.Y = -55, 50

	if _, err := NewWorld(testConfig(), data); !errors.Is(err, maploader.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestGameToggleRaysBuildsRays(t *testing.T) {
	cfg := testConfig()
	input := &fakeInput{}
	r := &fakeRenderer{}
	g := NewGame(newTestWorld(t, cfg), cfg, r, input)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n := len(g.World.Shadows.AllRays()); n != 0 {
		t.Fatalf("Expected no rays at startup, got %d", n)
	}

	input.just = map[render.Key]bool{render.KeyR: true}
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !g.Config.Display.Rays {
		t.Error("Expected R to turn ray display on")
	}
	if n := len(g.World.Shadows.AllRays()); n != 8 {
		t.Errorf("Expected 8 rays after toggling on, got %d", n)
	}

	g.Draw(&fakeImage{w: 800, h: 600})
	if r.lines != 8 {
		t.Errorf("Expected 8 ray lines drawn, got %d", r.lines)
	}

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n := len(g.World.Shadows.AllRays()); n != 0 {
		t.Errorf("Expected rays dropped after toggling off, got %d", n)
	}
}

func TestGameLayout(t *testing.T) {
	cfg := testConfig()
	g := NewGame(newTestWorld(t, cfg), cfg, &fakeRenderer{}, nil)

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("Expected 1024x768, got %dx%d", w, h)
	}
	if g.Viewport != testViewport {
		t.Errorf("Viewport should stay fixed, got %+v", g.Viewport)
	}

	g.TrackWindow = true
	g.Layout(1024, 768)
	if g.Viewport != (shadows.Viewport{Width: 1024, Height: 768}) {
		t.Errorf("Viewport should follow the window, got %+v", g.Viewport)
	}
}

func TestGameDraw(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Centroids = true
	r := &fakeRenderer{}
	g := NewGame(newTestWorld(t, cfg), cfg, r, nil)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	screen := &fakeImage{w: 800, h: 600}
	g.Draw(screen)

	if len(screen.fills) != 1 {
		t.Errorf("Expected the background filled once, got %d", len(screen.fills))
	}
	if r.rects != 4 {
		t.Errorf("Expected 4 outline bars, got %d", r.rects)
	}
	if r.circles != 4 {
		t.Errorf("Expected 4 centroid markers, got %d", r.circles)
	}
	if r.lines != 0 {
		t.Errorf("Expected no rays when rays are off, got %d", r.lines)
	}
	if len(r.texts) != 1 {
		t.Errorf("Expected one status line, got %d", len(r.texts))
	}

	var want render.Vertex
	want.VertexColor(g.Palette.Object)
	objects := 0
	for _, tri := range screen.triangles {
		v := tri[0]
		if v.ColorR == want.ColorR && v.ColorG == want.ColorG && v.ColorB == want.ColorB && v.ColorA == want.ColorA {
			objects++
		}
	}
	if objects != 1 {
		t.Errorf("Expected only the lit object drawn, got %d objects", objects)
	}
}

func TestViewMapsWorldToScreen(t *testing.T) {
	v := newView(testViewport, 800, 600)
	tests := []struct {
		p      shadows.Point
		sx, sy float32
	}{
		{shadows.Point{}, 400, 300},
		{shadows.Point{X: -400, Y: 300}, 0, 0},
		{shadows.Point{X: 400, Y: -300}, 800, 600},
	}
	for _, tt := range tests {
		x, y := v.toScreen(tt.p)
		if x != tt.sx || y != tt.sy {
			t.Errorf("toScreen(%+v) = (%v, %v), expected (%v, %v)", tt.p, x, y, tt.sx, tt.sy)
		}
	}
}

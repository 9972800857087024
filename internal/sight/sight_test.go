package sight

import (
	"errors"
	"testing"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/light"
	"chosenoffset.com/umbra/internal/scene"
)

var testViewport = shadows.Viewport{Width: 800, Height: 600}

type fixture struct {
	sc     *scene.Scene
	player scene.Entity
	wall   scene.Entity
}

// newFixture places the player at (px, py) and a 10x100 wall centered on (-50, 0).
func newFixture(t *testing.T, px, py float64) fixture {
	t.Helper()
	sc := scene.New()

	player := sc.Spawn(scene.KindPlayer, scene.At(px, py))
	sc.Players.Set(player, scene.Player{})
	sc.Sighted.Set(player, scene.Sighted{})
	sc.Visible.Set(player, scene.Visible{})
	sc.Footprints.Set(player, scene.Footprint{Width: 10, Height: 10})

	wall := sc.Spawn(scene.KindWall, scene.At(-50, 0))
	o, err := shadows.OccluderFromRect(shadows.Point{X: -50}, 10, 100)
	if err != nil {
		t.Fatalf("OccluderFromRect failed: %v", err)
	}
	sc.SetOccluder(wall, o)

	return fixture{sc: sc, player: player, wall: wall}
}

func (f fixture) object(x, y float64) scene.Entity {
	e := f.sc.Spawn(scene.KindObject, scene.At(x, y))
	f.sc.Visible.Set(e, scene.Visible{})
	f.sc.Footprints.Set(e, scene.Footprint{Width: 10, Height: 10})
	return e
}

func (f fixture) shadows(t *testing.T) *light.Shadows {
	t.Helper()
	sh := light.NewShadows(light.Options{})
	viewer, _ := f.sc.Position(f.player)
	for _, e := range f.sc.Occluders.Entities() {
		o, _ := f.sc.Occluders.Get(e)
		sh.Add(e, o, viewer, testViewport)
	}
	return sh
}

func TestOcclusionBlocksSight(t *testing.T) {
	f := newFixture(t, -100, 0)
	candidate := f.object(0, 0)
	check := NewCheckVisibility(f.sc)

	if check.Sees(f.player, candidate) {
		t.Error("Expected candidate behind the wall to be unseen")
	}

	f.sc.SetPosition(candidate, shadows.Point{X: 0, Y: 200})
	if !check.Sees(f.player, candidate) {
		t.Error("Expected candidate with clear line of sight to be seen")
	}
}

func TestInvisibleCandidateIsNeverSeen(t *testing.T) {
	sc := scene.New()
	viewer := sc.Spawn(scene.KindPlayer, scene.At(0, 0))
	sc.Sighted.Set(viewer, scene.Sighted{})
	ghost := sc.Spawn(scene.KindObject, scene.At(10, 0))

	if NewCheckVisibility(sc).Sees(viewer, ghost) {
		t.Error("Expected candidate without Visible to be unseen")
	}
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("Expected panic wrapping %v, got %v", target, r)
		}
	}()
	fn()
}

func TestSeesRequiresSightedViewer(t *testing.T) {
	f := newFixture(t, -100, 0)
	candidate := f.object(0, 200)
	check := NewCheckVisibility(f.sc)

	expectPanic(t, ErrNotSighted, func() { check.Sees(candidate, f.player) })

	f.sc.Sighted.Set(candidate, scene.Sighted{})
	f.sc.Transforms.Remove(candidate)
	expectPanic(t, ErrNoViewer, func() { check.Sees(candidate, f.player) })
}

// Every viewport point the oracle reports as blocked must fall inside one of the
// blocking occluder's shadow quads.
func TestShadowQuadsCoverOccludedWedge(t *testing.T) {
	f := newFixture(t, -100, 20)
	sh := f.shadows(t)
	group, ok := sh.Group(f.wall)
	if !ok {
		t.Fatal("Expected shadow group for wall")
	}
	o, _ := f.sc.Occluders.Get(f.wall)
	viewer, _ := f.sc.Position(f.player)

	blocked := 0
	for x := -400.0; x <= 400; x += 10 {
		for y := -300.0; y <= 300; y += 10 {
			p := shadows.Point{X: x + 0.5, Y: y + 0.5}
			if !shadows.SegmentCrossesOccluder(shadows.Segment{A: viewer, B: p}, o) {
				continue
			}
			blocked++
			if !group.Covers([]shadows.Point{p}) {
				t.Errorf("Expected blocked point %v to be inside a shadow quad", p)
			}
		}
	}
	if blocked == 0 {
		t.Fatal("Expected some sample points to be blocked")
	}
}

func TestShadowContainment(t *testing.T) {
	f := newFixture(t, -100, 20)
	behind := f.object(0, 0)
	clear := f.object(0, 200)
	partial := f.object(0, 80)
	sh := f.shadows(t)
	strategy := ShadowContainment{Scene: f.sc, Shadows: sh}

	if strategy.Visible(f.player, behind) {
		t.Error("Expected object fully behind the wall to be hidden")
	}
	if !strategy.Visible(f.player, clear) {
		t.Error("Expected object in the open to be visible")
	}

	// the ray-cast oracle disagrees here: the centre is blocked but one corner pokes out
	if NewCheckVisibility(f.sc).Sees(f.player, partial) {
		t.Fatal("Expected the oracle to report the partial object's centre as blocked")
	}
	if !strategy.Visible(f.player, partial) {
		t.Error("Expected partially shadowed object to stay visible")
	}
}

func TestShadowContainmentExcludesOwnShadow(t *testing.T) {
	f := newFixture(t, -100, 20)
	f.sc.Visible.Set(f.wall, scene.Visible{})
	f.sc.Footprints.Set(f.wall, scene.Footprint{Width: 10, Height: 100})
	sh := f.shadows(t)

	if InShadow(f.sc, sh, f.wall) {
		t.Error("Expected a wall not to be hidden by its own shadow")
	}
}

func TestShadowContainmentAbsenceCases(t *testing.T) {
	f := newFixture(t, -100, 20)
	noFootprint := f.object(0, 0)
	f.sc.Footprints.Remove(noFootprint)

	sh := f.shadows(t)
	if InShadow(f.sc, sh, noFootprint) {
		t.Error("Expected object without footprint to be treated as lit")
	}

	behind := f.object(0, 0)
	empty := light.NewShadows(light.Options{})
	if InShadow(f.sc, empty, behind) {
		t.Error("Expected object to be lit when no shadows exist yet")
	}
}

func TestApplyWritesHiddenFlags(t *testing.T) {
	for _, policy := range []string{PolicyRayCast, PolicyShadow} {
		t.Run(policy, func(t *testing.T) {
			f := newFixture(t, -100, 20)
			behind := f.object(0, 0)
			clear := f.object(0, 200)

			strategy, err := NewStrategy(policy, f.sc, f.shadows(t))
			if err != nil {
				t.Fatalf("NewStrategy failed: %v", err)
			}
			if n := Apply(f.sc, strategy, f.player); n != 1 {
				t.Errorf("Expected 1 hidden entity, got %d", n)
			}
			if hidden, _ := f.sc.Hidden.Get(behind); !hidden {
				t.Error("Expected object behind wall to be hidden")
			}
			if hidden, _ := f.sc.Hidden.Get(clear); hidden {
				t.Error("Expected object in the open to be shown")
			}
			if f.sc.Hidden.Has(f.player) {
				t.Error("Expected the viewer to be skipped")
			}
		})
	}

	if _, err := NewStrategy("xray", scene.New(), nil); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("Expected ErrUnknownPolicy, got %v", err)
	}
}

func TestWatchFlagsGuardsThatSeeThePlayer(t *testing.T) {
	f := newFixture(t, -100, 0)

	blind := f.sc.Spawn(scene.KindNPC, scene.At(0, 0))
	f.sc.Sighted.Set(blind, scene.Sighted{})
	alert := f.sc.Spawn(scene.KindNPC, scene.At(-100, 200))
	f.sc.Sighted.Set(alert, scene.Sighted{})

	if n := Watch(f.sc, f.player); n != 1 {
		t.Errorf("Expected 1 alerted guard, got %d", n)
	}
	if a, _ := f.sc.Alerted.Get(blind); a {
		t.Error("Expected guard behind the wall not to see the player")
	}
	if a, _ := f.sc.Alerted.Get(alert); !a {
		t.Error("Expected guard with clear line of sight to see the player")
	}
	if f.sc.Alerted.Has(f.player) {
		t.Error("Expected the player not to watch itself")
	}
}

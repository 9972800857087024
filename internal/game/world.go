package game

import (
	"fmt"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/light"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/scene"
	"chosenoffset.com/umbra/internal/sight"
	"chosenoffset.com/umbra/internal/simulation"
	"chosenoffset.com/umbra/internal/world/maploader"
)

// World owns the scene, its shadow cache and the active visibility policy,
// and advances them one tick at a time.
type World struct {
	Scene   *scene.Scene
	Shadows *light.Shadows
	Player  scene.Entity

	policy   string
	strategy sight.Strategy
	speed    float64
}

// NewWorld builds a world from a loaded scene file.
func NewWorld(cfg *simulation.Config, data *maploader.SceneData) (*World, error) {
	sc := scene.New()
	loaded, err := data.Populate(sc)
	if err != nil {
		return nil, fmt.Errorf("failed to populate scene: %w", err)
	}

	w := &World{
		Scene:   sc,
		Shadows: light.NewShadows(light.Options{DebugRays: cfg.Display.Rays}),
		Player:  loaded.Player,
		speed:   cfg.Movement.PlayerSpeed,
	}
	if err := w.SetPolicy(cfg.Visibility.Policy); err != nil {
		return nil, err
	}
	return w, nil
}

// Policy returns the active visibility policy name.
func (w *World) Policy() string {
	return w.policy
}

// SetPolicy switches the active visibility policy.
func (w *World) SetPolicy(policy string) error {
	strategy, err := sight.NewStrategy(policy, w.Scene, w.Shadows)
	if err != nil {
		return err
	}
	w.policy, w.strategy = policy, strategy
	logging.Logger().Info("visibility policy", "policy", policy)
	return nil
}

// TogglePolicy flips between ray casting and shadow containment.
func (w *World) TogglePolicy() {
	next := sight.PolicyShadow
	if w.policy == sight.PolicyShadow {
		next = sight.PolicyRayCast
	}
	if err := w.SetPolicy(next); err != nil {
		panic(fmt.Sprintf("game: toggling to built-in policy %q: %v", next, err))
	}
}

// Step advances the world by dt seconds:
//  1. move the player by intent, clamped to the viewport;
//  2. rebuild existing shadows if the player or viewport changed;
//  3. build shadows for occluders added since the last step;
//  4. write Hidden for every visible entity under the active policy;
//  5. write Alerted for every sighted entity that can see the player;
//  6. drop shadows of occluders removed since the last step.
func (w *World) Step(dt float64, intent Intent, vp shadows.Viewport) StepStats {
	var stats StepStats

	stats.Moved = w.move(dt, intent, vp)

	viewer, _ := w.Scene.Position(w.Player)
	stats.Recomputed = w.Shadows.Update(viewer, vp)

	for _, e := range w.Scene.TakeAdded() {
		o, ok := w.Scene.Occluders.Get(e)
		if !ok {
			continue
		}
		w.Shadows.Add(e, o, viewer, vp)
		stats.Added++
	}

	stats.Hidden = sight.Apply(w.Scene, w.strategy, w.Player)
	stats.Alerted = sight.Watch(w.Scene, w.Player)

	if removed := w.Scene.TakeRemoved(); len(removed) > 0 {
		stats.Removed = w.Shadows.Remove(removed...)
	}

	logging.Logger().Debug("step",
		"moved", stats.Moved, "recomputed", stats.Recomputed,
		"added", stats.Added, "removed", stats.Removed,
		"hidden", stats.Hidden, "alerted", stats.Alerted)
	return stats
}

func (w *World) move(dt float64, intent Intent, vp shadows.Viewport) bool {
	pos, ok := w.Scene.Position(w.Player)
	if !ok {
		return false
	}

	next := pos
	if dir := intent.Direction(); !dir.IsZero() {
		speed := w.speed
		if k, ok := w.Scene.Kinematics.Get(w.Player); ok && k.Speed > 0 {
			speed = k.Speed
		}
		next = pos.Add(dir.Scale(speed * dt))
	}

	// the viewer must stay inside the viewport for boundary projection
	next = w.inset(vp).Clamp(next)
	if next == pos || w.onCorner(next) {
		return false
	}
	w.Scene.SetPosition(w.Player, next)
	return true
}

// inset shrinks vp so the player's whole footprint stays on screen.
func (w *World) inset(vp shadows.Viewport) shadows.Viewport {
	f, ok := w.Scene.Footprints.Get(w.Player)
	if !ok || f.Width >= vp.Width || f.Height >= vp.Height {
		return vp
	}
	return shadows.Viewport{Width: vp.Width - f.Width, Height: vp.Height - f.Height}
}

// onCorner reports whether p is an occluder corner. A viewer standing on a
// corner has no direction to project that corner along.
func (w *World) onCorner(p shadows.Point) bool {
	found := false
	w.Scene.Occluders.Each(func(_ scene.Entity, o shadows.Occluder) {
		if o.HasCorner(p) {
			found = true
		}
	})
	return found
}

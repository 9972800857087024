// Package sight answers who can see whom: a ray-cast oracle over the occluders
// in a scene, and a coarser test against the player's shadow geometry.
package sight

import (
	"errors"
	"fmt"

	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/light"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/scene"
)

var (
	// ErrNotSighted is the panic cause when a query's viewer lacks the Sighted component.
	ErrNotSighted = errors.New("viewer is not sighted")
	// ErrNoViewer is the panic cause when the viewer has no position in the scene.
	ErrNoViewer = errors.New("viewer has no position")
	// ErrUnknownPolicy is returned for an unrecognized visibility policy name.
	ErrUnknownPolicy = errors.New("unknown visibility policy")
)

// Policy names.
const (
	PolicyRayCast = "raycast"
	PolicyShadow  = "shadow"
)

// CheckVisibility is the line-of-sight oracle.
type CheckVisibility struct {
	scene *scene.Scene
}

// NewCheckVisibility creates an oracle over sc.
func NewCheckVisibility(sc *scene.Scene) CheckVisibility {
	return CheckVisibility{scene: sc}
}

// Sees reports whether the straight line from viewer to candidate is clear of
// every occluder in the scene. Candidates without the Visible component are
// never seen. The viewer must be Sighted and positioned; otherwise Sees panics
// with an error wrapping ErrNotSighted or ErrNoViewer.
func (c CheckVisibility) Sees(viewer, candidate scene.Entity) bool {
	if !c.scene.Sighted.Has(viewer) {
		panic(fmt.Errorf("sight: %w: entity %d", ErrNotSighted, viewer))
	}
	viewerPos, ok := c.scene.Position(viewer)
	if !ok {
		panic(fmt.Errorf("sight: %w: entity %d", ErrNoViewer, viewer))
	}

	if !c.scene.Visible.Has(candidate) {
		return false
	}
	candidatePos, ok := c.scene.Position(candidate)
	if !ok {
		return false
	}

	lineOfSight := shadows.Segment{A: viewerPos, B: candidatePos}
	// Full scan: fine for the handful of walls in a room.
	for _, e := range c.scene.Occluders.Entities() {
		o, _ := c.scene.Occluders.Get(e)
		if shadows.SegmentCrossesOccluder(lineOfSight, o) {
			return false
		}
	}
	return true
}

// Strategy decides whether the viewer can see a candidate.
type Strategy interface {
	Visible(viewer, candidate scene.Entity) bool
}

// RayCast is the Strategy backed by CheckVisibility.
type RayCast struct {
	Check CheckVisibility
}

// Visible implements Strategy.
func (r RayCast) Visible(viewer, candidate scene.Entity) bool {
	return r.Check.Sees(viewer, candidate)
}

// ShadowContainment hides an object once all four footprint corners fall inside
// a single shadow quad of another occluder. Partially shadowed objects stay
// visible.
type ShadowContainment struct {
	Scene   *scene.Scene
	Shadows *light.Shadows
}

// Visible implements Strategy. The viewer argument is implied by the shadow
// geometry, which is always built from the player's position.
func (s ShadowContainment) Visible(_, candidate scene.Entity) bool {
	if !s.Scene.Visible.Has(candidate) {
		return false
	}
	return !InShadow(s.Scene, s.Shadows, candidate)
}

// InShadow reports whether some shadow quad of an occluder other than e covers
// all four corners of e's footprint. Entities without footprint or transform
// are never in shadow.
func InShadow(sc *scene.Scene, sh *light.Shadows, e scene.Entity) bool {
	footprint, ok := sc.Footprints.Get(e)
	if !ok {
		logging.Logger().Debug("no footprint, treating as lit", "entity", uint64(e))
		return false
	}
	transform, ok := sc.Transforms.Get(e)
	if !ok {
		return false
	}

	corners := footprint.Corners(transform)
	for _, group := range sh.Groups() {
		if group.Occluder == e {
			continue
		}
		if group.Covers(corners[:]) {
			return true
		}
	}
	return false
}

// NewStrategy returns the strategy for a policy name.
func NewStrategy(policy string, sc *scene.Scene, sh *light.Shadows) (Strategy, error) {
	switch policy {
	case PolicyRayCast:
		return RayCast{Check: NewCheckVisibility(sc)}, nil
	case PolicyShadow:
		return ShadowContainment{Scene: sc, Shadows: sh}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
}

// Apply writes the Hidden flag of every Visible entity other than the viewer,
// and returns how many are hidden.
func Apply(sc *scene.Scene, strategy Strategy, viewer scene.Entity) int {
	hidden := 0
	for _, e := range sc.Visible.Entities() {
		if e == viewer {
			continue
		}
		isHidden := !strategy.Visible(viewer, e)
		sc.Hidden.Set(e, isHidden)
		if isHidden {
			hidden++
		}
	}
	return hidden
}

// Watch records, for every sighted entity other than target, whether it can
// currently see target. Returns how many can.
func Watch(sc *scene.Scene, target scene.Entity) int {
	check := NewCheckVisibility(sc)
	alerted := 0
	for _, e := range sc.Sighted.Entities() {
		if e == target {
			continue
		}
		sees := check.Sees(e, target)
		sc.Alerted.Set(e, sees)
		if sees {
			alerted++
		}
	}
	return alerted
}

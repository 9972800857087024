// Package light synthesizes the shadow geometry cast by occluders as seen from
// the player, and keeps it in step with player movement and occluder churn.
package light

import (
	"chosenoffset.com/umbra/internal/core/shadows"
	"chosenoffset.com/umbra/internal/logging"
	"chosenoffset.com/umbra/internal/scene"
)

// GroupID identifies a shadow group.
type GroupID uint64

// SegmentShadow is the region hidden behind one occluder edge.
type SegmentShadow struct {
	Edge     shadows.Edge
	Segment  shadows.Segment
	Quad     shadows.Quad
	Centroid shadows.Point // drawn one layer above the quad
}

// Mesh returns the quad as an indexed triangle list.
func (s *SegmentShadow) Mesh() shadows.Mesh {
	return shadows.Mesh{
		Vertices: s.Quad.Vertices[:],
		Indices:  shadows.QuadIndices[:],
	}
}

// ShadowGroup owns the four segment shadows of one occluder. Occluder is a
// relation only: the group does not keep the occluder alive.
type ShadowGroup struct {
	ID       GroupID
	Occluder scene.Entity
	Segments [4]SegmentShadow
}

// Covers reports whether a single segment shadow contains every point.
func (g *ShadowGroup) Covers(points []shadows.Point) bool {
	for i := range g.Segments {
		if quadContainsAll(g.Segments[i].Quad, points) {
			return true
		}
	}
	return false
}

func quadContainsAll(q shadows.Quad, points []shadows.Point) bool {
	for _, p := range points {
		if !q.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// PlayerRay is a debug line from the player through an occluder corner to the
// viewport boundary.
type PlayerRay struct {
	Occluder scene.Entity
	Through  shadows.Point
	Start    shadows.Point
	End      shadows.Point
}

// Options controls which optional geometry is materialized.
type Options struct {
	// DebugRays creates PlayerRays alongside new shadow groups.
	DebugRays bool
}

// Shadows is the shadow geometry cache, keyed by occluder.
type Shadows struct {
	opts Options

	nextGroup  GroupID
	groups     map[GroupID]*ShadowGroup
	order      []GroupID
	byOccluder map[scene.Entity]GroupID
	rays       map[scene.Entity][]PlayerRay

	viewer   shadows.Point
	viewport shadows.Viewport
	seen     bool
}

// NewShadows creates an empty cache.
func NewShadows(opts Options) *Shadows {
	return &Shadows{
		opts:       opts,
		nextGroup:  1,
		groups:     make(map[GroupID]*ShadowGroup),
		byOccluder: make(map[scene.Entity]GroupID),
		rays:       make(map[scene.Entity][]PlayerRay),
	}
}

// Add builds the shadow group for a newly observed occluder. If the occluder
// already has a group, its geometry is rebuilt in place and the group ID kept.
func (s *Shadows) Add(occluder scene.Entity, o shadows.Occluder, viewer shadows.Point, vp shadows.Viewport) *ShadowGroup {
	group, exists := s.Group(occluder)
	if !exists {
		group = &ShadowGroup{ID: s.nextGroup, Occluder: occluder}
		s.nextGroup++
		s.groups[group.ID] = group
		s.order = append(s.order, group.ID)
		s.byOccluder[occluder] = group.ID
	}

	for i, seg := range o.Segments() {
		group.Segments[i] = buildSegmentShadow(shadows.Edge(i), seg, viewer, vp)
	}

	if s.opts.DebugRays {
		s.rays[occluder] = buildRays(group, viewer, vp)
	}

	logging.Logger().Info("shadow group created",
		"occluder", uint64(occluder), "group", uint64(group.ID), "rebuilt", exists)
	return group
}

// Update recomputes every group and ray in place when the viewer or viewport
// differs from the last call, and reports whether it did.
func (s *Shadows) Update(viewer shadows.Point, vp shadows.Viewport) bool {
	if s.seen && viewer == s.viewer && vp == s.viewport {
		return false
	}
	s.Recompute(viewer, vp)
	return true
}

// Recompute unconditionally rebuilds the geometry of every group and ray for the
// given viewer.
func (s *Shadows) Recompute(viewer shadows.Point, vp shadows.Viewport) {
	s.viewer, s.viewport, s.seen = viewer, vp, true

	for _, id := range s.order {
		group := s.groups[id]
		for i := range group.Segments {
			seg := &group.Segments[i]
			*seg = buildSegmentShadow(seg.Edge, seg.Segment, viewer, vp)
		}
	}

	for _, rays := range s.rays {
		for i := range rays {
			rays[i] = buildRay(rays[i].Occluder, rays[i].Through, viewer, vp)
		}
	}

	logging.Logger().Debug("shadows recomputed",
		"groups", len(s.order), "viewer_x", viewer.X, "viewer_y", viewer.Y)
}

// DebugRays reports whether debug rays are being materialized.
func (s *Shadows) DebugRays() bool {
	return s.opts.DebugRays
}

// SetDebugRays turns debug ray materialization on or off. Turning it on
// builds rays for every existing group from the last viewer; turning it off
// drops them.
func (s *Shadows) SetDebugRays(on bool) {
	if on == s.opts.DebugRays {
		return
	}
	s.opts.DebugRays = on

	if !on {
		clear(s.rays)
		return
	}
	for _, id := range s.order {
		group := s.groups[id]
		s.rays[group.Occluder] = buildRays(group, s.viewer, s.viewport)
	}
	logging.Logger().Debug("debug rays built", "groups", len(s.order))
}

// Remove destroys the groups and rays belonging to the given occluders and
// returns how many groups were removed. Unknown occluders are ignored.
func (s *Shadows) Remove(occluders ...scene.Entity) int {
	removed := 0
	for _, occluder := range occluders {
		delete(s.rays, occluder)

		id, ok := s.byOccluder[occluder]
		if !ok {
			continue
		}
		delete(s.byOccluder, occluder)
		delete(s.groups, id)
		for i, gid := range s.order {
			if gid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		removed++

		logging.Logger().Info("shadow group removed", "occluder", uint64(occluder), "group", uint64(id))
	}
	return removed
}

// Group returns the shadow group owned by occluder.
func (s *Shadows) Group(occluder scene.Entity) (*ShadowGroup, bool) {
	id, ok := s.byOccluder[occluder]
	if !ok {
		return nil, false
	}
	return s.groups[id], true
}

// Groups returns every group in creation order.
func (s *Shadows) Groups() []*ShadowGroup {
	result := make([]*ShadowGroup, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.groups[id])
	}
	return result
}

// Rays returns the debug rays of one occluder.
func (s *Shadows) Rays(occluder scene.Entity) []PlayerRay {
	return s.rays[occluder]
}

// AllRays returns every debug ray in group creation order.
func (s *Shadows) AllRays() []PlayerRay {
	var result []PlayerRay
	for _, id := range s.order {
		result = append(result, s.rays[s.groups[id].Occluder]...)
	}
	return result
}

// Len returns the number of shadow groups.
func (s *Shadows) Len() int {
	return len(s.order)
}

func buildSegmentShadow(edge shadows.Edge, seg shadows.Segment, viewer shadows.Point, vp shadows.Viewport) SegmentShadow {
	ray1End := shadows.ProjectPointThroughPoint(vp, viewer, seg.A)
	ray2End := shadows.ProjectPointThroughPoint(vp, viewer, seg.B)

	quad := shadows.NewQuad(seg.A, ray1End, ray2End, seg.B)
	centroid := quad.Centroid()
	centroid.Z++

	return SegmentShadow{
		Edge:     edge,
		Segment:  seg,
		Quad:     quad,
		Centroid: centroid,
	}
}

// buildRays casts two rays per edge, through both of its endpoints.
func buildRays(group *ShadowGroup, viewer shadows.Point, vp shadows.Viewport) []PlayerRay {
	rays := make([]PlayerRay, 0, 2*len(group.Segments))
	for _, seg := range group.Segments {
		rays = append(rays,
			buildRay(group.Occluder, seg.Segment.A, viewer, vp),
			buildRay(group.Occluder, seg.Segment.B, viewer, vp))
	}
	return rays
}

func buildRay(occluder scene.Entity, through, viewer shadows.Point, vp shadows.Viewport) PlayerRay {
	return PlayerRay{
		Occluder: occluder,
		Through:  through,
		Start:    viewer,
		End:      shadows.ProjectPointThroughPoint(vp, viewer, through),
	}
}

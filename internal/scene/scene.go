// Package scene holds the entity registries the visibility engine reads from and
// writes to. Each optional attribute lives in its own typed store keyed by a
// stable entity identifier.
//
// A Scene is not safe for concurrent use; the frame pipeline mutates it from a
// single goroutine in a fixed order.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"chosenoffset.com/umbra/internal/core/shadows"
)

// Entity is a stable entity identifier. Zero is never allocated.
type Entity uint64

// ErrNoPlayer is returned when the scene has no live player entity.
var ErrNoPlayer = errors.New("scene has no player")

// ErrMultiplePlayers is returned when more than one entity carries the Player marker.
var ErrMultiplePlayers = errors.New("scene has more than one player")

// Scene is the set of component registries plus the occluder change log.
type Scene struct {
	nextEntity Entity

	Kinds      *Store[Kind]
	Transforms *Store[Transform]
	Occluders  *Store[shadows.Occluder]
	Footprints *Store[Footprint]
	Sighted    *Store[Sighted]
	Visible    *Store[Visible]
	Players    *Store[Player]
	Kinematics *Store[Kinematics]

	// Outputs written by the visibility pass.
	Hidden  *Store[bool]
	Alerted *Store[bool]

	added   []Entity
	removed []Entity
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		nextEntity: 1,
		Kinds:      NewStore[Kind](),
		Transforms: NewStore[Transform](),
		Occluders:  NewStore[shadows.Occluder](),
		Footprints: NewStore[Footprint](),
		Sighted:    NewStore[Sighted](),
		Visible:    NewStore[Visible](),
		Players:    NewStore[Player](),
		Kinematics: NewStore[Kinematics](),
		Hidden:     NewStore[bool](),
		Alerted:    NewStore[bool](),
	}
}

// Spawn allocates a new entity of the given kind at transform t.
func (s *Scene) Spawn(kind Kind, t Transform) Entity {
	e := s.nextEntity
	s.nextEntity++
	s.Kinds.Set(e, kind)
	s.Transforms.Set(e, t)
	return e
}

// Exists reports whether e has been spawned and not despawned.
func (s *Scene) Exists(e Entity) bool {
	return s.Kinds.Has(e)
}

// Position returns the world-space translation of e.
func (s *Scene) Position(e Entity) (shadows.Point, bool) {
	t, ok := s.Transforms.Get(e)
	return t.Translation, ok
}

// SetPosition moves e to p, keeping its rotation.
func (s *Scene) SetPosition(e Entity, p shadows.Point) {
	t, _ := s.Transforms.Get(e)
	t.Translation = p
	s.Transforms.Set(e, t)
}

// SetOccluder attaches (or replaces) the occluder rectangle of e and records it
// as newly added for the next shadow pass.
func (s *Scene) SetOccluder(e Entity, o shadows.Occluder) {
	s.Occluders.Set(e, o)
	s.removed = without(s.removed, e)
	if !slices.Contains(s.added, e) {
		s.added = append(s.added, e)
	}
}

// RemoveOccluder detaches the occluder of e and records the removal.
func (s *Scene) RemoveOccluder(e Entity) {
	if !s.Occluders.Remove(e) {
		return
	}
	s.added = without(s.added, e)
	if !slices.Contains(s.removed, e) {
		s.removed = append(s.removed, e)
	}
}

// Despawn removes e and all its components.
func (s *Scene) Despawn(e Entity) {
	s.RemoveOccluder(e)
	s.Kinds.Remove(e)
	s.Transforms.Remove(e)
	s.Footprints.Remove(e)
	s.Sighted.Remove(e)
	s.Visible.Remove(e)
	s.Players.Remove(e)
	s.Kinematics.Remove(e)
	s.Hidden.Remove(e)
	s.Alerted.Remove(e)
}

// TakeAdded returns the occluders added since the last call and clears the list.
func (s *Scene) TakeAdded() []Entity {
	added := s.added
	s.added = nil
	return added
}

// TakeRemoved returns the occluders removed since the last call and clears the list.
func (s *Scene) TakeRemoved() []Entity {
	removed := s.removed
	s.removed = nil
	return removed
}

// Player returns the single entity carrying the Player marker.
func (s *Scene) Player() (Entity, error) {
	switch s.Players.Len() {
	case 0:
		return 0, ErrNoPlayer
	case 1:
		return s.Players.Entities()[0], nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrMultiplePlayers, s.Players.Len())
	}
}

func without(list []Entity, e Entity) []Entity {
	return slices.DeleteFunc(list, func(x Entity) bool { return x == e })
}

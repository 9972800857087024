package scene

// Store is a typed component registry keyed by entity.
// Iteration follows insertion order.
type Store[T any] struct {
	components map[Entity]T
	entities   []Entity
}

// NewStore creates an empty store for component type T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		components: make(map[Entity]T),
		entities:   make([]Entity, 0, 16),
	}
}

// Set inserts or replaces the component for e.
func (s *Store[T]) Set(e Entity, val T) {
	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
}

// Get returns the component for e.
func (s *Store[T]) Get(e Entity) (T, bool) {
	val, ok := s.components[e]
	return val, ok
}

// Has reports whether e carries this component.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.components[e]
	return ok
}

// Remove deletes the component for e and reports whether it was present.
func (s *Store[T]) Remove(e Entity) bool {
	if _, exists := s.components[e]; !exists {
		return false
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities = append(s.entities[:i], s.entities[i+1:]...)
			break
		}
	}
	return true
}

// Entities returns a copy of the entities holding this component, in insertion order.
func (s *Store[T]) Entities() []Entity {
	result := make([]Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Each calls fn for every entity in insertion order. fn must not add or remove
// components of this store.
func (s *Store[T]) Each(fn func(Entity, T)) {
	for _, e := range s.entities {
		fn(e, s.components[e])
	}
}

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Clear removes every component.
func (s *Store[T]) Clear() {
	s.components = make(map[Entity]T)
	s.entities = s.entities[:0]
}

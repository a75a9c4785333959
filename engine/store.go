package engine

import (
	"github.com/lixenwraith/bounce/component"
	"github.com/lixenwraith/bounce/core"
)

// BodyStore is an indexed arena of bodies keyed by entity
// Removal during a pass only marks a tombstone; Compact reclaims slots in a single pass,
// so slot indices stay stable for the duration of a frame's pair scan
type BodyStore struct {
	nextID    core.Entity
	entities  []core.Entity
	bodies    []component.Body
	dead      []bool
	deadCount int
	index     map[core.Entity]int
}

// NewBodyStore creates an empty store
func NewBodyStore() *BodyStore {
	return &BodyStore{
		nextID:   1,
		entities: make([]core.Entity, 0, 64),
		bodies:   make([]component.Body, 0, 64),
		dead:     make([]bool, 0, 64),
		index:    make(map[core.Entity]int),
	}
}

// Insert appends a body and returns its new entity
// Appending may move the backing array: callers must not hold *Body across Insert
func (s *BodyStore) Insert(b component.Body) core.Entity {
	id := s.nextID
	s.nextID++

	s.index[id] = len(s.entities)
	s.entities = append(s.entities, id)
	s.bodies = append(s.bodies, b)
	s.dead = append(s.dead, false)
	return id
}

// Get returns the live body for an entity
func (s *BodyStore) Get(e core.Entity) (*component.Body, bool) {
	i, ok := s.index[e]
	if !ok || s.dead[i] {
		return nil, false
	}
	return &s.bodies[i], true
}

// Has reports whether the entity is live
func (s *BodyStore) Has(e core.Entity) bool {
	_, ok := s.Get(e)
	return ok
}

// Kill tombstones an entity, returns false if it was not live
func (s *BodyStore) Kill(e core.Entity) bool {
	i, ok := s.index[e]
	if !ok || s.dead[i] {
		return false
	}
	s.dead[i] = true
	s.deadCount++
	return true
}

// Len returns the number of live bodies
func (s *BodyStore) Len() int {
	return len(s.entities) - s.deadCount
}

// Slots returns the number of slots including tombstones
func (s *BodyStore) Slots() int {
	return len(s.entities)
}

// Slot returns the entity and body at slot i; alive is false for tombstones
func (s *BodyStore) Slot(i int) (e core.Entity, b *component.Body, alive bool) {
	return s.entities[i], &s.bodies[i], !s.dead[i]
}

// Compact removes tombstoned slots in a single pass - O(n), preserves order of survivors
func (s *BodyStore) Compact() int {
	if s.deadCount == 0 {
		return 0
	}

	removed := s.deadCount
	writeIdx := 0
	for i, e := range s.entities {
		if s.dead[i] {
			delete(s.index, e)
			continue
		}
		if writeIdx != i {
			s.entities[writeIdx] = e
			s.bodies[writeIdx] = s.bodies[i]
			s.index[e] = writeIdx
		}
		s.dead[writeIdx] = false
		writeIdx++
	}

	// Zero the tail so dropped bodies do not linger in the backing array
	for i := writeIdx; i < len(s.bodies); i++ {
		s.bodies[i] = component.Body{}
	}

	s.entities = s.entities[:writeIdx]
	s.bodies = s.bodies[:writeIdx]
	s.dead = s.dead[:writeIdx]
	s.deadCount = 0
	return removed
}

// Each calls fn for every live body in slot order
func (s *BodyStore) Each(fn func(e core.Entity, b *component.Body)) {
	for i, e := range s.entities {
		if s.dead[i] {
			continue
		}
		fn(e, &s.bodies[i])
	}
}

// Entities returns a copy of live entity IDs in slot order
func (s *BodyStore) Entities() []core.Entity {
	out := make([]core.Entity, 0, s.Len())
	for i, e := range s.entities {
		if !s.dead[i] {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot returns a copy of all live bodies in slot order
func (s *BodyStore) Snapshot() []component.Body {
	out := make([]component.Body, 0, s.Len())
	for i := range s.bodies {
		if !s.dead[i] {
			out = append(out, s.bodies[i])
		}
	}
	return out
}

// Clear removes all bodies; entity IDs are not reused
func (s *BodyStore) Clear() {
	s.entities = s.entities[:0]
	s.bodies = s.bodies[:0]
	s.dead = s.dead[:0]
	s.deadCount = 0
	s.index = make(map[core.Entity]int)
}

package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
	Clear()
}

// Store is a typed side-table keyed by EntityID. Iteration follows insertion
// order so a tick over the same state always visits entities the same way.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	data  []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 128),
		ids:   make([]EntityID, 0, 128),
		data:  make([]*T, 0, 128),
	}
}

// Set attaches c to id, replacing any previous value in place.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Remove deletes id, keeping the relative order of the remaining entries.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.index, id)
	copy(s.ids[i:], s.ids[i+1:])
	copy(s.data[i:], s.data[i+1:])
	last := len(s.ids) - 1
	s.ids = s.ids[:last]
	s.data[last] = nil
	s.data = s.data[:last]
	for j := i; j < last; j++ {
		s.index[s.ids[j]] = j
	}
}

func (s *Store[T]) Clear() {
	clear(s.index)
	clear(s.data)
	s.ids = s.ids[:0]
	s.data = s.data[:0]
}

func (s *Store[T]) Len() int { return len(s.ids) }

// Each visits entries in insertion order. fn must not add or remove entries;
// use World.MarkForDestruction for removal.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.data[i])
	}
}

// EachUntil is Each with early exit: iteration stops when fn returns false.
func (s *Store[T]) EachUntil(fn func(EntityID, *T) bool) {
	for i, id := range s.ids {
		if !fn(id, s.data[i]) {
			return
		}
	}
}

// IDs returns a copy of the stored IDs in iteration order.
func (s *Store[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

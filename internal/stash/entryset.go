package stash

// EntrySet is the canonical in-memory collection for one entity type: a
// mapping from identifier to entity. Keys are unique and always equal the
// entity's own id; insertion order carries no meaning.
type EntrySet[T any] struct {
	entries map[int64]T
}

// NewEntrySet returns an empty EntrySet.
func NewEntrySet[T any]() *EntrySet[T] {
	return &EntrySet[T]{entries: make(map[int64]T)}
}

// Get returns the entity stored under id and whether it is present.
func (s *EntrySet[T]) Get(id int64) (T, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// Has reports whether id is a present key.
func (s *EntrySet[T]) Has(id int64) bool {
	_, ok := s.entries[id]
	return ok
}

// Set inserts or overwrites the entity stored under id.
func (s *EntrySet[T]) Set(id int64, e T) {
	s.entries[id] = e
}

// Delete removes the entity stored under id. Deleting an absent id is a
// no-op.
func (s *EntrySet[T]) Delete(id int64) {
	delete(s.entries, id)
}

// Values returns a snapshot slice of all entities, order unspecified.
func (s *EntrySet[T]) Values() []T {
	values := make([]T, 0, len(s.entries))
	for _, e := range s.entries {
		values = append(values, e)
	}
	return values
}

// Count returns the number of entries.
func (s *EntrySet[T]) Count() int {
	return len(s.entries)
}

package stash

// Store holds the in-memory state shared by every module: the EntrySet plus
// the key function extracting an entity's identifier. It never touches the
// database and never errors on missing ids; callers guard mutations and
// cascades with IsValid. Module-specific extras (active pointers) live on
// the concrete module types and are cleared by their Reset wrappers.
type Store[T any] struct {
	all *EntrySet[T]
	key func(T) int64
}

func newStore[T any](key func(T) int64) Store[T] {
	return Store[T]{all: NewEntrySet[T](), key: key}
}

// All returns the module's EntrySet. Callers must treat it as read-only;
// mutations go through the module's methods.
func (s *Store[T]) All() *EntrySet[T] {
	return s.all
}

// IsValid reports whether id names a present entity. It is the sole
// existence guard before any mutation or cascade.
func (s *Store[T]) IsValid(id int64) bool {
	return s.all.Has(id)
}

// AddToState inserts or overwrites a single entry. Relational integrity is
// the caller's responsibility.
func (s *Store[T]) AddToState(e T) {
	s.all.Set(s.key(e), e)
}

// DeleteFromState removes a single entry; no-op if absent.
func (s *Store[T]) DeleteFromState(id int64) {
	s.all.Delete(id)
}

// Reset replaces the EntrySet with a fresh empty one. Concrete modules wrap
// Reset to clear their extra fields and cascade to dependent modules.
func (s *Store[T]) Reset() {
	s.all = NewEntrySet[T]()
}

// replaceAll resets the store and refills it from rows.
func (s *Store[T]) replaceAll(rows []T) {
	s.Reset()
	for _, e := range rows {
		s.AddToState(e)
	}
}

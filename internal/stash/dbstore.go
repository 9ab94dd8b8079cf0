package stash

import "context"

// entityTable is the slice of a table accessor the generic store layer
// needs: full reload and single-field update. Compound create/delete
// operations differ per entity type and live on the concrete modules.
type entityTable[T any] interface {
	All(ctx context.Context) ([]T, error)
	UpdateField(ctx context.Context, id int64, field string, value any) (int64, error)
}

// TableStore extends Store with write-through persistence against one
// backing table.
type TableStore[T any] struct {
	Store[T]
	table entityTable[T]
}

func newTableStore[T any](key func(T) int64, table entityTable[T]) TableStore[T] {
	return TableStore[T]{Store: newStore(key), table: table}
}

// Fetch replaces the in-memory state with the table's full current
// contents. The preceding reset guarantees no stale entry survives a
// reload; calling Fetch twice in a row is idempotent.
func (s *TableStore[T]) Fetch(ctx context.Context) error {
	rows, err := s.table.All(ctx)
	if err != nil {
		return err
	}
	s.replaceAll(rows)
	return nil
}

// UpdateStateAndDB applies a single-field update to the persisted row and,
// when a row was affected, to the in-memory entity via mutate. Returns the
// affected-row count; zero with a nil error signals best-effort failure.
// Call only on already-validated ids.
func (s *TableStore[T]) UpdateStateAndDB(ctx context.Context, id int64, field string, value any, mutate func(T)) (int64, error) {
	n, err := s.table.UpdateField(ctx, id, field, value)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if e, ok := s.all.Get(id); ok {
			mutate(e)
		}
	}
	return n, nil
}

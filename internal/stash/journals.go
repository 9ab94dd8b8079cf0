package stash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexstash/lexstash/internal/sqlite"
	"github.com/lexstash/lexstash/pkg/types"
)

// groupCascade is the slice of the Groups module the journal module needs
// for cascades and relational validation.
type groupCascade interface {
	FetchByJournal(ctx context.Context, journalID int64) error
	Get(id int64) (*types.Group, bool)
	Reset()
}

// Journals is the journal entity module. Extra state: the active-journal
// pointer. Activating a journal eagerly loads its groups; deactivating
// resets the dependent modules.
type Journals struct {
	TableStore[*types.Journal]

	backend  *sqlite.Backend
	groups   groupCascade
	log      *slog.Logger
	activeID *int64
}

func newJournals(backend *sqlite.Backend, table *sqlite.JournalsTable, log *slog.Logger) *Journals {
	return &Journals{
		TableStore: newTableStore(func(j *types.Journal) int64 { return j.JournalID }, table),
		backend:    backend,
		log:        log,
	}
}

// ActiveID returns the active-journal pointer, or nil when no journal is
// active.
func (m *Journals) ActiveID() *int64 {
	return m.activeID
}

// Active returns the active journal entity, or nil.
func (m *Journals) Active() *types.Journal {
	if m.activeID == nil {
		return nil
	}
	j, _ := m.all.Get(*m.activeID)
	return j
}

// Get returns the journal stored under id and whether it is present.
func (m *Journals) Get(id int64) (*types.Journal, bool) {
	return m.all.Get(id)
}

// Reset clears the EntrySet and the active pointer, then cascades the reset
// to the dependent group module. The database is not touched.
func (m *Journals) Reset() {
	m.activeID = nil
	m.Store.Reset()
	m.groups.Reset()
}

// Fetch replaces the journal state with the table's full current contents.
// The full module reset runs first so a stale active pointer or dependent
// state never survives a reload.
func (m *Journals) Fetch(ctx context.Context) error {
	m.Reset()
	return m.TableStore.Fetch(ctx)
}

// New creates a journal together with its mandatory root group in a single
// transaction. The root group id is only known after insertion, so the
// journal's root_group_id is back-filled inside the same transaction. The
// in-memory mirror happens after commit. Returns the new journal's id.
func (m *Journals) New(ctx context.Context, name string) (int64, error) {
	name, err := types.ValidateName(name)
	if err != nil {
		return 0, fmt.Errorf("new journal: %w", err)
	}

	var created *types.Journal
	err = m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.Journals.Add(ctx, &types.Journal{Name: name})
		if err != nil {
			return err
		}
		j, err := tx.Journals.Get(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			return types.Abort(fmt.Sprintf("journal %d not readable after insert", id))
		}
		if err != nil {
			return err
		}

		rootID, err := tx.Groups.Add(ctx, &types.Group{JournalID: id, Name: types.RootGroupName})
		if err != nil {
			return err
		}
		if _, err := tx.Journals.UpdateField(ctx, id, "root_group_id", rootID); err != nil {
			return err
		}
		j.RootGroupID = rootID
		created = j
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("new journal: %w", err)
	}

	m.AddToState(created)
	m.log.Debug("journal created",
		"journal_id", created.JournalID, "root_group_id", created.RootGroupID)
	return created.JournalID, nil
}

// Delete removes a journal and everything it owns: its groups, its words,
// and every word-group link pointing at those groups, all in one
// transaction. If the journal is active it is deactivated first so no
// active reference outlives the deletion. Dependents are deleted before
// the parent so the collected group-id set stays valid throughout.
func (m *Journals) Delete(ctx context.Context, journalID int64) error {
	if !m.IsValid(journalID) {
		return fmt.Errorf("delete journal %d: %w", journalID, types.ErrInvalidID)
	}
	if m.activeID != nil && *m.activeID == journalID {
		if err := m.SetActiveID(ctx, nil); err != nil {
			return fmt.Errorf("delete journal %d: %w", journalID, err)
		}
	}

	err := m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		groupIDs, err := tx.Groups.IDsByJournal(ctx, journalID)
		if err != nil {
			return err
		}
		if _, err := tx.WordGroups.DeleteByGroupIDs(ctx, groupIDs); err != nil {
			return err
		}
		if _, err := tx.Words.DeleteByJournal(ctx, journalID); err != nil {
			return err
		}
		if _, err := tx.Groups.DeleteByJournal(ctx, journalID); err != nil {
			return err
		}
		_, err = tx.Journals.Delete(ctx, journalID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete journal %d: %w", journalID, err)
	}

	m.DeleteFromState(journalID)
	m.log.Debug("journal deleted", "journal_id", journalID)
	return nil
}

// SetActiveID sets the active-journal pointer. Activating fetches the
// dependent group set scoped to the new journal; deactivating (nil) resets
// the dependent modules instead. The pointer write itself is pure
// in-memory.
func (m *Journals) SetActiveID(ctx context.Context, journalID *int64) error {
	if journalID == nil {
		m.activeID = nil
		m.groups.Reset()
		return nil
	}
	if !m.IsValid(*journalID) {
		return fmt.Errorf("activate journal %d: %w", *journalID, types.ErrInvalidID)
	}
	id := *journalID
	m.activeID = &id
	return m.groups.FetchByJournal(ctx, id)
}

// SetName renames a journal through the single-field update path.
func (m *Journals) SetName(ctx context.Context, journalID int64, name string) error {
	if !m.IsValid(journalID) {
		return fmt.Errorf("rename journal %d: %w", journalID, types.ErrInvalidID)
	}
	name, err := types.ValidateName(name)
	if err != nil {
		return fmt.Errorf("rename journal %d: %w", journalID, err)
	}
	_, err = m.UpdateStateAndDB(ctx, journalID, "name", name,
		func(j *types.Journal) { j.Name = name })
	return err
}

// SetDefaultGroupID sets or clears a journal's default group. The group
// must exist in the group store, belong to the journal, and must not be
// the journal's root group. nil is accepted unconditionally.
func (m *Journals) SetDefaultGroupID(ctx context.Context, journalID int64, groupID *int64) error {
	if !m.IsValid(journalID) {
		return fmt.Errorf("set default group: journal %d: %w", journalID, types.ErrInvalidID)
	}

	var dbValue any // NULL when clearing
	if groupID != nil {
		g, ok := m.groups.Get(*groupID)
		if !ok {
			return fmt.Errorf("set default group %d: %w", *groupID, types.ErrInvalidID)
		}
		if g.JournalID != journalID {
			return fmt.Errorf("set default group %d: %w", *groupID, types.ErrGroupNotInJournal)
		}
		if j, ok := m.all.Get(journalID); ok && j.RootGroupID == *groupID {
			return fmt.Errorf("set default group %d: %w", *groupID, types.ErrRootGroup)
		}
		dbValue = *groupID
	}

	_, err := m.UpdateStateAndDB(ctx, journalID, "default_group_id", dbValue,
		func(j *types.Journal) {
			if groupID == nil {
				j.DefaultGroupID = nil
				return
			}
			id := *groupID
			j.DefaultGroupID = &id
		})
	return err
}

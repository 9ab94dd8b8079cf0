package stash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexstash/lexstash/internal/sqlite"
	"github.com/lexstash/lexstash/pkg/types"
)

// journalView is the slice of the Journals module the group module needs
// for relational checks. Mirroring a cleared default group happens through
// the shared *types.Journal pointer.
type journalView interface {
	Get(id int64) (*types.Journal, bool)
}

// wordCascade is the slice of the Words module the group module needs for
// cascades.
type wordCascade interface {
	FetchByGroup(ctx context.Context, groupID int64) error
	Reset()
}

// Groups is the group entity module. Extra state: the active-group pointer.
// The store only ever holds the groups of the active journal.
type Groups struct {
	TableStore[*types.Group]

	backend  *sqlite.Backend
	gt       *sqlite.GroupsTable
	journals journalView
	words    wordCascade
	log      *slog.Logger
	activeID *int64
}

func newGroups(backend *sqlite.Backend, table *sqlite.GroupsTable, log *slog.Logger) *Groups {
	return &Groups{
		TableStore: newTableStore(func(g *types.Group) int64 { return g.GroupID }, table),
		backend:    backend,
		gt:         table,
		log:        log,
	}
}

// ActiveID returns the active-group pointer, or nil when no group is
// active.
func (m *Groups) ActiveID() *int64 {
	return m.activeID
}

// Active returns the active group entity, or nil.
func (m *Groups) Active() *types.Group {
	if m.activeID == nil {
		return nil
	}
	g, _ := m.all.Get(*m.activeID)
	return g
}

// Get returns the group stored under id and whether it is present.
func (m *Groups) Get(id int64) (*types.Group, bool) {
	return m.all.Get(id)
}

// Reset clears the EntrySet and the active pointer, then cascades the reset
// to the dependent word module. The database is not touched.
func (m *Groups) Reset() {
	m.activeID = nil
	m.Store.Reset()
	m.words.Reset()
}

// FetchByJournal replaces the in-memory state with the groups of one
// journal. The preceding reset also clears the active pointer and unloads
// the word module, since both were scoped to the previous journal.
func (m *Groups) FetchByJournal(ctx context.Context, journalID int64) error {
	rows, err := m.gt.ByJournal(ctx, journalID)
	if err != nil {
		return fmt.Errorf("fetch groups for journal %d: %w", journalID, err)
	}
	m.Reset()
	m.replaceAll(rows)
	return nil
}

// New creates a group in the given journal. The journal must be present in
// the journal store. Returns the new group's id.
func (m *Groups) New(ctx context.Context, journalID int64, name string) (int64, error) {
	if _, ok := m.journals.Get(journalID); !ok {
		return 0, fmt.Errorf("new group: journal %d: %w", journalID, types.ErrInvalidID)
	}
	name, err := types.ValidateName(name)
	if err != nil {
		return 0, fmt.Errorf("new group: %w", err)
	}

	var created *types.Group
	err = m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.Groups.Add(ctx, &types.Group{JournalID: journalID, Name: name})
		if err != nil {
			return err
		}
		g, err := tx.Groups.Get(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			return types.Abort(fmt.Sprintf("group %d not readable after insert", id))
		}
		if err != nil {
			return err
		}
		created = g
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("new group: %w", err)
	}

	m.AddToState(created)
	m.log.Debug("group created", "group_id", created.GroupID, "journal_id", journalID)
	return created.GroupID, nil
}

// Delete removes a group and its word-group links in one transaction. The
// root group is rejected; it only disappears with its journal. When the
// owning journal's default group pointed at the deleted group, the
// reference is cleared inside the same transaction. An active deleted
// group is deactivated first so the word module never holds state for a
// vanished parent.
func (m *Groups) Delete(ctx context.Context, groupID int64) error {
	g, ok := m.all.Get(groupID)
	if !ok {
		return fmt.Errorf("delete group %d: %w", groupID, types.ErrInvalidID)
	}
	owner, _ := m.journals.Get(g.JournalID)
	if g.IsRootOf(owner) {
		return fmt.Errorf("delete group %d: %w", groupID, types.ErrRootGroup)
	}
	if m.activeID != nil && *m.activeID == groupID {
		if err := m.SetActiveID(ctx, nil); err != nil {
			return fmt.Errorf("delete group %d: %w", groupID, err)
		}
	}

	clearDefault := owner != nil && owner.DefaultGroupID != nil && *owner.DefaultGroupID == groupID
	err := m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		if _, err := tx.WordGroups.DeleteByGroupIDs(ctx, []int64{groupID}); err != nil {
			return err
		}
		if clearDefault {
			if _, err := tx.Journals.UpdateField(ctx, owner.JournalID, "default_group_id", nil); err != nil {
				return err
			}
		}
		_, err := tx.Groups.Delete(ctx, groupID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete group %d: %w", groupID, err)
	}

	m.DeleteFromState(groupID)
	if clearDefault {
		owner.DefaultGroupID = nil
	}
	m.log.Debug("group deleted", "group_id", groupID, "journal_id", g.JournalID)
	return nil
}

// SetActiveID sets the active-group pointer. Activating fetches the words
// linked to the new group; deactivating (nil) resets the word module.
func (m *Groups) SetActiveID(ctx context.Context, groupID *int64) error {
	if groupID == nil {
		m.activeID = nil
		m.words.Reset()
		return nil
	}
	if !m.IsValid(*groupID) {
		return fmt.Errorf("activate group %d: %w", *groupID, types.ErrInvalidID)
	}
	id := *groupID
	m.activeID = &id
	return m.words.FetchByGroup(ctx, id)
}

// SetName renames a group through the single-field update path. The root
// group is rejected.
func (m *Groups) SetName(ctx context.Context, groupID int64, name string) error {
	g, ok := m.all.Get(groupID)
	if !ok {
		return fmt.Errorf("rename group %d: %w", groupID, types.ErrInvalidID)
	}
	if owner, _ := m.journals.Get(g.JournalID); g.IsRootOf(owner) {
		return fmt.Errorf("rename group %d: %w", groupID, types.ErrRootGroup)
	}
	name, err := types.ValidateName(name)
	if err != nil {
		return fmt.Errorf("rename group %d: %w", groupID, err)
	}
	_, err = m.UpdateStateAndDB(ctx, groupID, "name", name,
		func(g *types.Group) { g.Name = name })
	return err
}

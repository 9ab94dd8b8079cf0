package stash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexstash/lexstash/internal/sqlite"
	"github.com/lexstash/lexstash/pkg/types"
)

// groupView is the slice of the Groups module the word module needs for
// validating link targets.
type groupView interface {
	Get(id int64) (*types.Group, bool)
}

// Words is the word entity module. No extra state beyond the EntrySet; the
// store holds the words of the active journal or active group, whichever
// was fetched last.
type Words struct {
	TableStore[*types.Word]

	backend *sqlite.Backend
	wt      *sqlite.WordsTable
	wg      *sqlite.WordGroupsTable
	groups  groupView
	log     *slog.Logger
}

func newWords(backend *sqlite.Backend, table *sqlite.WordsTable, links *sqlite.WordGroupsTable, log *slog.Logger) *Words {
	return &Words{
		TableStore: newTableStore(func(w *types.Word) int64 { return w.WordID }, table),
		backend:    backend,
		wt:         table,
		wg:         links,
		log:        log,
	}
}

// Get returns the word stored under id and whether it is present.
func (m *Words) Get(id int64) (*types.Word, bool) {
	return m.all.Get(id)
}

// FetchByJournal replaces the in-memory state with the words of one
// journal.
func (m *Words) FetchByJournal(ctx context.Context, journalID int64) error {
	rows, err := m.wt.ByJournal(ctx, journalID)
	if err != nil {
		return fmt.Errorf("fetch words for journal %d: %w", journalID, err)
	}
	m.replaceAll(rows)
	return nil
}

// FetchByGroup replaces the in-memory state with the words linked to one
// group.
func (m *Words) FetchByGroup(ctx context.Context, groupID int64) error {
	rows, err := m.wt.ByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("fetch words for group %d: %w", groupID, err)
	}
	m.replaceAll(rows)
	return nil
}

// New creates a word in the given journal and links it to the given groups,
// all in one transaction. Every group must be present in the group store
// and belong to the journal; violations fail before the transaction opens.
// Returns the new word's id.
func (m *Words) New(ctx context.Context, journalID int64, text string, groupIDs ...int64) (int64, error) {
	text, err := types.ValidateText(text)
	if err != nil {
		return 0, fmt.Errorf("new word: %w", err)
	}
	for _, gid := range groupIDs {
		g, ok := m.groups.Get(gid)
		if !ok {
			return 0, fmt.Errorf("new word: group %d: %w", gid, types.ErrInvalidID)
		}
		if g.JournalID != journalID {
			return 0, fmt.Errorf("new word: group %d: %w", gid, types.ErrGroupNotInJournal)
		}
	}

	var created *types.Word
	err = m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		id, err := tx.Words.Add(ctx, &types.Word{JournalID: journalID, Text: text})
		if err != nil {
			return err
		}
		w, err := tx.Words.Get(ctx, id)
		if errors.Is(err, types.ErrNotFound) {
			return types.Abort(fmt.Sprintf("word %d not readable after insert", id))
		}
		if err != nil {
			return err
		}
		for _, gid := range groupIDs {
			if err := tx.WordGroups.Add(ctx, types.WordGroupLink{WordID: id, GroupID: gid}); err != nil {
				return err
			}
		}
		created = w
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("new word: %w", err)
	}

	m.AddToState(created)
	m.log.Debug("word created",
		"word_id", created.WordID, "journal_id", journalID, "groups", len(groupIDs))
	return created.WordID, nil
}

// Delete removes a word and its word-group links in one transaction.
func (m *Words) Delete(ctx context.Context, wordID int64) error {
	if !m.IsValid(wordID) {
		return fmt.Errorf("delete word %d: %w", wordID, types.ErrInvalidID)
	}

	err := m.backend.WithTx(ctx, func(tx *sqlite.Tx) error {
		if _, err := tx.WordGroups.DeleteByWord(ctx, wordID); err != nil {
			return err
		}
		_, err := tx.Words.Delete(ctx, wordID)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete word %d: %w", wordID, err)
	}

	m.DeleteFromState(wordID)
	m.log.Debug("word deleted", "word_id", wordID)
	return nil
}

// Link adds a word to a group. The group must be present in the group
// store and belong to the word's journal. Linking an already-linked pair
// is a no-op.
func (m *Words) Link(ctx context.Context, wordID, groupID int64) error {
	w, ok := m.all.Get(wordID)
	if !ok {
		return fmt.Errorf("link word %d: %w", wordID, types.ErrInvalidID)
	}
	g, ok := m.groups.Get(groupID)
	if !ok {
		return fmt.Errorf("link word %d to group %d: %w", wordID, groupID, types.ErrInvalidID)
	}
	if g.JournalID != w.JournalID {
		return fmt.Errorf("link word %d to group %d: %w", wordID, groupID, types.ErrGroupNotInJournal)
	}
	return m.wg.Add(ctx, types.WordGroupLink{WordID: wordID, GroupID: groupID})
}

// Unlink removes a word from a group. Returns the number of link rows
// removed; zero means the pair was not linked.
func (m *Words) Unlink(ctx context.Context, wordID, groupID int64) (int64, error) {
	if !m.IsValid(wordID) {
		return 0, fmt.Errorf("unlink word %d: %w", wordID, types.ErrInvalidID)
	}
	return m.wg.Delete(ctx, wordID, groupID)
}

// SetText updates a word's text through the single-field update path.
func (m *Words) SetText(ctx context.Context, wordID int64, text string) error {
	if !m.IsValid(wordID) {
		return fmt.Errorf("update word %d: %w", wordID, types.ErrInvalidID)
	}
	text, err := types.ValidateText(text)
	if err != nil {
		return fmt.Errorf("update word %d: %w", wordID, err)
	}
	_, err = m.UpdateStateAndDB(ctx, wordID, "text", text,
		func(w *types.Word) { w.Text = text })
	return err
}

package stash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexstash/lexstash/pkg/types"
)

// wordFixture creates one journal with a non-root group and activates the
// journal.
func wordFixture(t *testing.T, s *Stash) (journalID, groupID int64) {
	t.Helper()
	ctx := context.Background()

	journalID, err := s.Journals.New(ctx, "Spanish")
	require.NoError(t, err)
	activate(t, s, journalID)
	groupID, err = s.Groups.New(ctx, journalID, "Verbs")
	require.NoError(t, err)
	return journalID, groupID
}

func TestWordsNew(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a word with links", func(t *testing.T) {
		s, backend := setupStash(t)
		journal, group := wordFixture(t, s)

		id, err := s.Words.New(ctx, journal, "hablar", group)
		require.NoError(t, err)

		w, ok := s.Words.Get(id)
		require.True(t, ok)
		assert.Equal(t, "hablar", w.Text)
		assert.Equal(t, journal, w.JournalID)

		lt, err := backend.WordGroups()
		require.NoError(t, err)
		links, err := lt.ByWord(ctx, id)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, group, links[0].GroupID)
	})

	t.Run("creates a word without links", func(t *testing.T) {
		s, backend := setupStash(t)
		journal, _ := wordFixture(t, s)

		id, err := s.Words.New(ctx, journal, "mesa")
		require.NoError(t, err)

		lt, err := backend.WordGroups()
		require.NoError(t, err)
		links, err := lt.ByWord(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("rejects a group missing from the store", func(t *testing.T) {
		s, backend := setupStash(t)
		journal, _ := wordFixture(t, s)

		_, err := s.Words.New(ctx, journal, "hablar", 999)
		assert.ErrorIs(t, err, types.ErrInvalidID)

		// Nothing was written.
		wt, err := backend.Words()
		require.NoError(t, err)
		rows, err := wt.ByJournal(ctx, journal)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("rejects a group of another journal", func(t *testing.T) {
		s, _ := setupStash(t)
		_, group := wordFixture(t, s)

		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)

		_, err = s.Words.New(ctx, french, "bonjour", group)
		assert.ErrorIs(t, err, types.ErrGroupNotInJournal)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		s, _ := setupStash(t)
		journal, _ := wordFixture(t, s)

		_, err := s.Words.New(ctx, journal, "  ")
		assert.ErrorIs(t, err, types.ErrTextEmpty)
	})
}

func TestWordsDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the word and its links", func(t *testing.T) {
		s, backend := setupStash(t)
		journal, group := wordFixture(t, s)

		id, err := s.Words.New(ctx, journal, "hablar", group)
		require.NoError(t, err)

		require.NoError(t, s.Words.Delete(ctx, id))
		assert.False(t, s.Words.IsValid(id))

		wt, err := backend.Words()
		require.NoError(t, err)
		_, err = wt.Get(ctx, id)
		assert.ErrorIs(t, err, types.ErrNotFound)

		lt, err := backend.WordGroups()
		require.NoError(t, err)
		links, err := lt.ByWord(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("unknown id fails fast", func(t *testing.T) {
		s, _ := setupStash(t)
		assert.ErrorIs(t, s.Words.Delete(ctx, 42), types.ErrInvalidID)
	})
}

func TestWordsLinkUnlink(t *testing.T) {
	ctx := context.Background()
	s, backend := setupStash(t)
	journal, group := wordFixture(t, s)

	id, err := s.Words.New(ctx, journal, "hablar")
	require.NoError(t, err)

	t.Run("link and relink", func(t *testing.T) {
		require.NoError(t, s.Words.Link(ctx, id, group))
		// Linking an already-linked pair is a no-op.
		require.NoError(t, s.Words.Link(ctx, id, group))

		lt, err := backend.WordGroups()
		require.NoError(t, err)
		links, err := lt.ByWord(ctx, id)
		require.NoError(t, err)
		assert.Len(t, links, 1)
	})

	t.Run("unlink reports removed rows", func(t *testing.T) {
		n, err := s.Words.Unlink(ctx, id, group)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = s.Words.Unlink(ctx, id, group)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("link validates both ends", func(t *testing.T) {
		assert.ErrorIs(t, s.Words.Link(ctx, 999, group), types.ErrInvalidID)
		assert.ErrorIs(t, s.Words.Link(ctx, id, 999), types.ErrInvalidID)

		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)
		activate(t, s, french)
		frRoot := s.Groups.All().Values()[0]

		// The word tier was reset with the journal switch; reload it.
		require.NoError(t, s.Words.FetchByJournal(ctx, journal))
		assert.ErrorIs(t, s.Words.Link(ctx, id, frRoot.GroupID), types.ErrGroupNotInJournal)
	})
}

func TestWordsFetch(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStash(t)
	journal, group := wordFixture(t, s)

	linked, err := s.Words.New(ctx, journal, "hablar", group)
	require.NoError(t, err)
	loose, err := s.Words.New(ctx, journal, "mesa")
	require.NoError(t, err)

	t.Run("by group", func(t *testing.T) {
		require.NoError(t, s.Words.FetchByGroup(ctx, group))
		assert.Equal(t, 1, s.Words.All().Count())
		assert.True(t, s.Words.IsValid(linked))
	})

	t.Run("by journal", func(t *testing.T) {
		require.NoError(t, s.Words.FetchByJournal(ctx, journal))
		assert.Equal(t, 2, s.Words.All().Count())
		assert.True(t, s.Words.IsValid(loose))
	})
}

func TestWordsSetText(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStash(t)
	journal, _ := wordFixture(t, s)

	id, err := s.Words.New(ctx, journal, "ablar")
	require.NoError(t, err)

	require.NoError(t, s.Words.SetText(ctx, id, "hablar"))
	w, _ := s.Words.Get(id)
	assert.Equal(t, "hablar", w.Text)

	require.NoError(t, s.Words.FetchByJournal(ctx, journal))
	w, _ = s.Words.Get(id)
	assert.Equal(t, "hablar", w.Text)

	assert.ErrorIs(t, s.Words.SetText(ctx, id, ""), types.ErrTextEmpty)
	assert.ErrorIs(t, s.Words.SetText(ctx, 999, "x"), types.ErrInvalidID)
}

package stash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexstash/lexstash/pkg/types"
)

func TestJournalsNew(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the journal with its root group", func(t *testing.T) {
		s, backend := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)

		j, ok := s.Journals.Get(id)
		require.True(t, ok)
		assert.Equal(t, "Spanish", j.Name)
		assert.NotZero(t, j.RootGroupID)
		assert.Nil(t, j.DefaultGroupID)
		assert.False(t, j.CreatedAt.IsZero())

		// The root group row exists and is back-referenced by the journal.
		gt, err := backend.Groups()
		require.NoError(t, err)
		root, err := gt.Get(ctx, j.RootGroupID)
		require.NoError(t, err)
		assert.Equal(t, types.RootGroupName, root.Name)
		assert.Equal(t, id, root.JournalID)
	})

	t.Run("persisted row matches in-memory state", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		before, _ := s.Journals.Get(id)

		require.NoError(t, s.Fetch(ctx))
		after, ok := s.Journals.Get(id)
		require.True(t, ok)
		assert.Equal(t, before.Name, after.Name)
		assert.Equal(t, before.RootGroupID, after.RootGroupID)
	})

	t.Run("rejects empty and blank names", func(t *testing.T) {
		s, _ := setupStash(t)

		_, err := s.Journals.New(ctx, "")
		assert.ErrorIs(t, err, types.ErrNameEmpty)
		_, err = s.Journals.New(ctx, "   ")
		assert.ErrorIs(t, err, types.ErrNameEmpty)
		assert.Equal(t, 0, s.Journals.All().Count())
	})
}

func TestJournalsDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade removes everything the journal owns", func(t *testing.T) {
		s, backend := setupStash(t)

		spanish, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)

		// Populate Spanish: one extra group, two words, one link.
		activate(t, s, spanish)
		verbs, err := s.Groups.New(ctx, spanish, "Verbs")
		require.NoError(t, err)
		hola, err := s.Words.New(ctx, spanish, "hola", verbs)
		require.NoError(t, err)
		_, err = s.Words.New(ctx, spanish, "adios")
		require.NoError(t, err)

		// Populate French with one word so cross-journal rows exist.
		activate(t, s, french)
		bonjour, err := s.Words.New(ctx, french, "bonjour")
		require.NoError(t, err)

		require.NoError(t, s.Journals.Delete(ctx, spanish))

		assert.False(t, s.Journals.IsValid(spanish))
		assert.True(t, s.Journals.IsValid(french))

		// Nothing owned by Spanish survives in the database.
		gt, err := backend.Groups()
		require.NoError(t, err)
		rows, err := gt.ByJournal(ctx, spanish)
		require.NoError(t, err)
		assert.Empty(t, rows)

		wt, err := backend.Words()
		require.NoError(t, err)
		words, err := wt.ByJournal(ctx, spanish)
		require.NoError(t, err)
		assert.Empty(t, words)

		lt, err := backend.WordGroups()
		require.NoError(t, err)
		links, err := lt.All(ctx)
		require.NoError(t, err)
		for _, l := range links {
			assert.NotEqual(t, hola, l.WordID)
		}

		// The other journal's rows are untouched.
		frWords, err := wt.ByJournal(ctx, french)
		require.NoError(t, err)
		require.Len(t, frWords, 1)
		assert.Equal(t, bonjour, frWords[0].WordID)
	})

	t.Run("deleting the active journal deactivates it first", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)
		require.NotEqual(t, 0, s.Groups.All().Count())

		require.NoError(t, s.Journals.Delete(ctx, id))
		assert.Nil(t, s.Journals.ActiveID())
		assert.Equal(t, 0, s.Groups.All().Count())
		assert.Equal(t, 0, s.Words.All().Count())
	})

	t.Run("deleting one journal keeps the others loaded", func(t *testing.T) {
		s, _ := setupStash(t)

		spanish, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)

		activate(t, s, spanish)
		require.NoError(t, s.Journals.Delete(ctx, spanish))

		assert.Equal(t, 1, s.Journals.All().Count())
		assert.True(t, s.Journals.IsValid(french))
	})

	t.Run("unknown id fails fast", func(t *testing.T) {
		s, _ := setupStash(t)
		err := s.Journals.Delete(ctx, 42)
		assert.ErrorIs(t, err, types.ErrInvalidID)
	})
}

func TestJournalsSetActiveID(t *testing.T) {
	ctx := context.Background()

	t.Run("activation loads the journal's groups", func(t *testing.T) {
		s, _ := setupStash(t)

		spanish, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)

		activate(t, s, spanish)
		require.NotNil(t, s.Journals.ActiveID())
		assert.Equal(t, spanish, *s.Journals.ActiveID())
		assert.Equal(t, 1, s.Groups.All().Count()) // root group only

		for _, g := range s.Groups.All().Values() {
			assert.Equal(t, spanish, g.JournalID)
		}

		// Switching journals swaps the whole group tier.
		activate(t, s, french)
		for _, g := range s.Groups.All().Values() {
			assert.Equal(t, french, g.JournalID)
		}
	})

	t.Run("deactivation resets dependent tiers", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)

		require.NoError(t, s.Journals.SetActiveID(ctx, nil))
		assert.Nil(t, s.Journals.ActiveID())
		assert.Nil(t, s.Journals.Active())
		assert.Equal(t, 0, s.Groups.All().Count())
		assert.Equal(t, 0, s.Words.All().Count())
	})

	t.Run("unknown id is rejected and pointer is unchanged", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)

		bogus := int64(999)
		err = s.Journals.SetActiveID(ctx, &bogus)
		assert.ErrorIs(t, err, types.ErrInvalidID)
		require.NotNil(t, s.Journals.ActiveID())
		assert.Equal(t, id, *s.Journals.ActiveID())
	})
}

func TestJournalsSetName(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStash(t)

	id, err := s.Journals.New(ctx, "Spanish")
	require.NoError(t, err)

	require.NoError(t, s.Journals.SetName(ctx, id, "Castilian"))
	j, _ := s.Journals.Get(id)
	assert.Equal(t, "Castilian", j.Name)

	// The rename is persisted.
	require.NoError(t, s.Fetch(ctx))
	j, _ = s.Journals.Get(id)
	assert.Equal(t, "Castilian", j.Name)

	assert.ErrorIs(t, s.Journals.SetName(ctx, id, " "), types.ErrNameEmpty)
	assert.ErrorIs(t, s.Journals.SetName(ctx, 999, "x"), types.ErrInvalidID)
}

func TestJournalsSetDefaultGroupID(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a non-root group of the journal", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)
		verbs, err := s.Groups.New(ctx, id, "Verbs")
		require.NoError(t, err)

		require.NoError(t, s.Journals.SetDefaultGroupID(ctx, id, &verbs))
		j, _ := s.Journals.Get(id)
		require.NotNil(t, j.DefaultGroupID)
		assert.Equal(t, verbs, *j.DefaultGroupID)

		// Clearing is unconditional.
		require.NoError(t, s.Journals.SetDefaultGroupID(ctx, id, nil))
		assert.Nil(t, j.DefaultGroupID)
	})

	t.Run("rejects the root group", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)

		j, _ := s.Journals.Get(id)
		err = s.Journals.SetDefaultGroupID(ctx, id, &j.RootGroupID)
		assert.ErrorIs(t, err, types.ErrRootGroup)
	})

	t.Run("rejects a group of another journal", func(t *testing.T) {
		s, _ := setupStash(t)

		spanish, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		french, err := s.Journals.New(ctx, "French")
		require.NoError(t, err)

		activate(t, s, spanish)
		verbs, err := s.Groups.New(ctx, spanish, "Verbs")
		require.NoError(t, err)

		err = s.Journals.SetDefaultGroupID(ctx, french, &verbs)
		assert.ErrorIs(t, err, types.ErrGroupNotInJournal)
	})

	t.Run("rejects a group missing from the store", func(t *testing.T) {
		s, _ := setupStash(t)

		id, err := s.Journals.New(ctx, "Spanish")
		require.NoError(t, err)
		activate(t, s, id)

		bogus := int64(999)
		err = s.Journals.SetDefaultGroupID(ctx, id, &bogus)
		assert.ErrorIs(t, err, types.ErrInvalidID)
	})
}

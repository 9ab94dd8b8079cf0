package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexstash/lexstash/pkg/types"
)

func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func TestBackendAttach(t *testing.T) {
	t.Run("creates the database file", func(t *testing.T) {
		dir := t.TempDir()
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		defer b.Detach()

		_, err := os.Stat(filepath.Join(dir, dbFileName))
		assert.NoError(t, err)
	})

	t.Run("applies the full schema", func(t *testing.T) {
		ctx := context.Background()
		b := setupBackend(t)

		for _, table := range types.StandardTableNames {
			q, err := b.liveDB()
			require.NoError(t, err)
			row := q.QueryRowContext(ctx,
				"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table)
			var n int
			require.NoError(t, row.Scan(&n))
			assert.Equal(t, 1, n, "missing table %s", table)
		}
	})

	t.Run("creates the data dir when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		defer b.Detach()

		_, err := os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("rejects double attach", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("rejects an empty data dir", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{})
		assert.ErrorIs(t, err, types.ErrDataDirEmpty)
	})

	t.Run("reattach sees the previous data", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()

		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		jt, err := b.Journals()
		require.NoError(t, err)
		id, err := jt.Add(ctx, &types.Journal{Name: "Spanish"})
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(types.Config{DataDir: dir}))
		defer b2.Detach()
		jt2, err := b2.Journals()
		require.NoError(t, err)
		j, err := jt2.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Spanish", j.Name)
	})
}

func TestBackendDetach(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		b := setupBackend(t)
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("accessors fail when detached", func(t *testing.T) {
		b := NewBackend()
		_, err := b.Journals()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.Groups()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.Words()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.WordGroups()
		assert.ErrorIs(t, err, types.ErrDetached)
		assert.ErrorIs(t, b.WithTx(context.Background(), func(tx *Tx) error { return nil }),
			types.ErrDetached)
	})
}

func TestBackendWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit on nil", func(t *testing.T) {
		b := setupBackend(t)

		var id int64
		err := b.WithTx(ctx, func(tx *Tx) error {
			var err error
			id, err = tx.Journals.Add(ctx, &types.Journal{Name: "Spanish"})
			return err
		})
		require.NoError(t, err)

		jt, err := b.Journals()
		require.NoError(t, err)
		_, err = jt.Get(ctx, id)
		assert.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		b := setupBackend(t)
		boom := errors.New("boom")

		var id int64
		err := b.WithTx(ctx, func(tx *Tx) error {
			var err error
			id, err = tx.Journals.Add(ctx, &types.Journal{Name: "Spanish"})
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		jt, err := b.Journals()
		require.NoError(t, err)
		_, err = jt.Get(ctx, id)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("rollback on abort", func(t *testing.T) {
		b := setupBackend(t)

		var id int64
		err := b.WithTx(ctx, func(tx *Tx) error {
			var err error
			id, err = tx.Journals.Add(ctx, &types.Journal{Name: "Spanish"})
			require.NoError(t, err)
			return types.Abort("insert not readable")
		})
		require.Error(t, err)
		assert.True(t, types.IsAbort(err))

		jt, err := b.Journals()
		require.NoError(t, err)
		_, err = jt.Get(ctx, id)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("tx accessors see uncommitted writes", func(t *testing.T) {
		b := setupBackend(t)

		err := b.WithTx(ctx, func(tx *Tx) error {
			id, err := tx.Journals.Add(ctx, &types.Journal{Name: "Spanish"})
			if err != nil {
				return err
			}
			j, err := tx.Journals.Get(ctx, id)
			if err != nil {
				return err
			}
			assert.Equal(t, "Spanish", j.Name)
			return nil
		})
		require.NoError(t, err)
	})
}

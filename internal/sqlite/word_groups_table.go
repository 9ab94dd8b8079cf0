package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexstash/lexstash/pkg/types"
)

// WordGroupsTable provides access to the words_in_groups link table. Links
// are keyed by the (word_id, group_id) pair; there is no surrogate id and
// no updatable field.
type WordGroupsTable struct {
	q DBTX
}

// Add inserts a link row. Inserting an existing pair is a no-op.
func (t *WordGroupsTable) Add(ctx context.Context, l types.WordGroupLink) error {
	_, err := t.q.ExecContext(ctx,
		"INSERT OR IGNORE INTO words_in_groups (word_id, group_id) VALUES (?, ?)",
		l.WordID, l.GroupID)
	if err != nil {
		return fmt.Errorf("inserting word-group link: %w", err)
	}
	return nil
}

// Delete removes a single link row. Returns the number of rows deleted.
func (t *WordGroupsTable) Delete(ctx context.Context, wordID, groupID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx,
		"DELETE FROM words_in_groups WHERE word_id = ? AND group_id = ?", wordID, groupID)
	if err != nil {
		return 0, fmt.Errorf("deleting word-group link: %w", err)
	}
	return res.RowsAffected()
}

// All returns every link row.
func (t *WordGroupsTable) All(ctx context.Context) ([]types.WordGroupLink, error) {
	return t.query(ctx, "SELECT word_id, group_id FROM words_in_groups")
}

// ByGroup returns the links pointing at one group.
func (t *WordGroupsTable) ByGroup(ctx context.Context, groupID int64) ([]types.WordGroupLink, error) {
	return t.query(ctx,
		"SELECT word_id, group_id FROM words_in_groups WHERE group_id = ?", groupID)
}

// ByWord returns the links originating from one word.
func (t *WordGroupsTable) ByWord(ctx context.Context, wordID int64) ([]types.WordGroupLink, error) {
	return t.query(ctx,
		"SELECT word_id, group_id FROM words_in_groups WHERE word_id = ?", wordID)
}

// DeleteByWord removes every link originating from one word.
func (t *WordGroupsTable) DeleteByWord(ctx context.Context, wordID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx,
		"DELETE FROM words_in_groups WHERE word_id = ?", wordID)
	if err != nil {
		return 0, fmt.Errorf("deleting word links: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByGroupIDs removes every link pointing at any of the given groups.
// A nil or empty id set deletes nothing.
func (t *WordGroupsTable) DeleteByGroupIDs(ctx context.Context, groupIDs []int64) (int64, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(groupIDs))
	args := make([]any, len(groupIDs))
	for i, id := range groupIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	res, err := t.q.ExecContext(ctx,
		"DELETE FROM words_in_groups WHERE group_id IN ("+strings.Join(placeholders, ",")+")",
		args...)
	if err != nil {
		return 0, fmt.Errorf("deleting group links: %w", err)
	}
	return res.RowsAffected()
}

func (t *WordGroupsTable) query(ctx context.Context, query string, args ...any) ([]types.WordGroupLink, error) {
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching word-group links: %w", err)
	}
	defer rows.Close()

	var results []types.WordGroupLink
	for rows.Next() {
		var l types.WordGroupLink
		if err := rows.Scan(&l.WordID, &l.GroupID); err != nil {
			return nil, fmt.Errorf("scanning word-group link: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

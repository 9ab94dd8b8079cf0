package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lexstash/lexstash/pkg/types"
)

// GroupsTable provides CRUD access to the groups table.
type GroupsTable struct {
	q DBTX
}

// groupColumns whitelists the columns UpdateField may touch.
var groupColumns = map[string]string{
	"name": "name",
}

const groupSelect = "SELECT group_id, journal_id, name, created_at FROM groups"

// Add inserts a new group row and returns the engine-assigned id.
// Sets g.GroupID on success.
func (t *GroupsTable) Add(ctx context.Context, g *types.Group) (int64, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	res, err := t.q.ExecContext(ctx,
		"INSERT INTO groups (journal_id, name, created_at) VALUES (?, ?, ?)",
		g.JournalID, g.Name, g.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting group: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading group insert id: %w", err)
	}
	g.GroupID = id
	return id, nil
}

// Get retrieves a group by id. Returns ErrNotFound if no row exists.
func (t *GroupsTable) Get(ctx context.Context, id int64) (*types.Group, error) {
	row := t.q.QueryRowContext(ctx, groupSelect+" WHERE group_id = ?", id)
	g, err := hydrateGroup(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	return g, err
}

// All returns every group row ordered by creation time.
func (t *GroupsTable) All(ctx context.Context) ([]*types.Group, error) {
	return t.query(ctx, groupSelect+" ORDER BY created_at, group_id")
}

// ByJournal returns the groups belonging to one journal.
func (t *GroupsTable) ByJournal(ctx context.Context, journalID int64) ([]*types.Group, error) {
	return t.query(ctx, groupSelect+" WHERE journal_id = ? ORDER BY created_at, group_id", journalID)
}

// IDsByJournal returns the primary keys of the groups belonging to one
// journal. Used for collecting cascade scope before multi-table deletes.
func (t *GroupsTable) IDsByJournal(ctx context.Context, journalID int64) ([]int64, error) {
	rows, err := t.q.QueryContext(ctx,
		"SELECT group_id FROM groups WHERE journal_id = ?", journalID)
	if err != nil {
		return nil, fmt.Errorf("fetching group ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning group id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateField updates a single whitelisted column and returns the number of
// rows affected.
func (t *GroupsTable) UpdateField(ctx context.Context, id int64, field string, value any) (int64, error) {
	col, ok := groupColumns[field]
	if !ok {
		return 0, fmt.Errorf("groups.%s: %w", field, types.ErrUnknownField)
	}
	res, err := t.q.ExecContext(ctx,
		"UPDATE groups SET "+col+" = ? WHERE group_id = ?", value, id)
	if err != nil {
		return 0, fmt.Errorf("updating group %s: %w", field, err)
	}
	return res.RowsAffected()
}

// Delete removes a group row. Returns the number of rows deleted.
func (t *GroupsTable) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, "DELETE FROM groups WHERE group_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting group: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByJournal removes every group belonging to one journal.
func (t *GroupsTable) DeleteByJournal(ctx context.Context, journalID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, "DELETE FROM groups WHERE journal_id = ?", journalID)
	if err != nil {
		return 0, fmt.Errorf("deleting journal groups: %w", err)
	}
	return res.RowsAffected()
}

func (t *GroupsTable) query(ctx context.Context, query string, args ...any) ([]*types.Group, error) {
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching groups: %w", err)
	}
	defer rows.Close()

	var results []*types.Group
	for rows.Next() {
		g, err := hydrateGroup(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, g)
	}
	return results, rows.Err()
}

func hydrateGroup(s rowScanner) (*types.Group, error) {
	var g types.Group
	var createdAt string
	if err := s.Scan(&g.GroupID, &g.JournalID, &g.Name, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}
	var err error
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing group created_at: %w", err)
	}
	return &g, nil
}

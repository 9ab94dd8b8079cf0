package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lexstash/lexstash/pkg/types"
)

// JournalsTable provides CRUD access to the journals table. The accessor is
// bound either to the live database or to an in-flight transaction.
type JournalsTable struct {
	q DBTX
}

// journalColumns whitelists the columns UpdateField may touch.
var journalColumns = map[string]string{
	"name":             "name",
	"root_group_id":    "root_group_id",
	"default_group_id": "default_group_id",
}

const journalSelect = "SELECT journal_id, name, root_group_id, default_group_id, created_at FROM journals"

// Add inserts a new journal row and returns the engine-assigned id.
// RootGroupID is back-filled later via UpdateField; DefaultGroupID starts
// NULL. Sets j.JournalID on success.
func (t *JournalsTable) Add(ctx context.Context, j *types.Journal) (int64, error) {
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	res, err := t.q.ExecContext(ctx,
		"INSERT INTO journals (name, root_group_id, default_group_id, created_at) VALUES (?, NULL, NULL, ?)",
		j.Name, j.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting journal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading journal insert id: %w", err)
	}
	j.JournalID = id
	return id, nil
}

// Get retrieves a journal by id. Returns ErrNotFound if no row exists.
func (t *JournalsTable) Get(ctx context.Context, id int64) (*types.Journal, error) {
	row := t.q.QueryRowContext(ctx, journalSelect+" WHERE journal_id = ?", id)
	return scanJournal(row)
}

// All returns every journal row ordered by creation time.
func (t *JournalsTable) All(ctx context.Context) ([]*types.Journal, error) {
	rows, err := t.q.QueryContext(ctx, journalSelect+" ORDER BY created_at, journal_id")
	if err != nil {
		return nil, fmt.Errorf("fetching journals: %w", err)
	}
	defer rows.Close()

	var results []*types.Journal
	for rows.Next() {
		j, err := scanJournalRows(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, j)
	}
	return results, rows.Err()
}

// UpdateField updates a single whitelisted column and returns the number of
// rows affected. Zero with a nil error means no row matched.
func (t *JournalsTable) UpdateField(ctx context.Context, id int64, field string, value any) (int64, error) {
	col, ok := journalColumns[field]
	if !ok {
		return 0, fmt.Errorf("journals.%s: %w", field, types.ErrUnknownField)
	}
	res, err := t.q.ExecContext(ctx,
		"UPDATE journals SET "+col+" = ? WHERE journal_id = ?", value, id)
	if err != nil {
		return 0, fmt.Errorf("updating journal %s: %w", field, err)
	}
	return res.RowsAffected()
}

// Delete removes a journal row. Returns the number of rows deleted.
func (t *JournalsTable) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, "DELETE FROM journals WHERE journal_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting journal: %w", err)
	}
	return res.RowsAffected()
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared hydration.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournal(row *sql.Row) (*types.Journal, error) {
	j, err := hydrateJournal(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	return j, err
}

func scanJournalRows(rows *sql.Rows) (*types.Journal, error) {
	return hydrateJournal(rows)
}

func hydrateJournal(s rowScanner) (*types.Journal, error) {
	var j types.Journal
	var rootGroup, defaultGroup sql.NullInt64
	var createdAt string
	if err := s.Scan(&j.JournalID, &j.Name, &rootGroup, &defaultGroup, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning journal: %w", err)
	}
	if rootGroup.Valid {
		j.RootGroupID = rootGroup.Int64
	}
	if defaultGroup.Valid {
		j.DefaultGroupID = &defaultGroup.Int64
	}
	var err error
	j.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing journal created_at: %w", err)
	}
	return &j, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lexstash/lexstash/pkg/types"
)

// WordsTable provides CRUD access to the words table.
type WordsTable struct {
	q DBTX
}

// wordColumns whitelists the columns UpdateField may touch.
var wordColumns = map[string]string{
	"text": "text",
}

const wordSelect = "SELECT word_id, journal_id, text, created_at FROM words"

// Add inserts a new word row and returns the engine-assigned id.
// Sets w.WordID on success.
func (t *WordsTable) Add(ctx context.Context, w *types.Word) (int64, error) {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	res, err := t.q.ExecContext(ctx,
		"INSERT INTO words (journal_id, text, created_at) VALUES (?, ?, ?)",
		w.JournalID, w.Text, w.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting word: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading word insert id: %w", err)
	}
	w.WordID = id
	return id, nil
}

// Get retrieves a word by id. Returns ErrNotFound if no row exists.
func (t *WordsTable) Get(ctx context.Context, id int64) (*types.Word, error) {
	row := t.q.QueryRowContext(ctx, wordSelect+" WHERE word_id = ?", id)
	w, err := hydrateWord(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	return w, err
}

// All returns every word row ordered by creation time.
func (t *WordsTable) All(ctx context.Context) ([]*types.Word, error) {
	return t.query(ctx, wordSelect+" ORDER BY created_at, word_id")
}

// ByJournal returns the words belonging to one journal.
func (t *WordsTable) ByJournal(ctx context.Context, journalID int64) ([]*types.Word, error) {
	return t.query(ctx, wordSelect+" WHERE journal_id = ? ORDER BY created_at, word_id", journalID)
}

// ByGroup returns the words linked to one group through words_in_groups.
func (t *WordsTable) ByGroup(ctx context.Context, groupID int64) ([]*types.Word, error) {
	return t.query(ctx, wordSelect+` WHERE word_id IN
		(SELECT word_id FROM words_in_groups WHERE group_id = ?)
		ORDER BY created_at, word_id`, groupID)
}

// UpdateField updates a single whitelisted column and returns the number of
// rows affected.
func (t *WordsTable) UpdateField(ctx context.Context, id int64, field string, value any) (int64, error) {
	col, ok := wordColumns[field]
	if !ok {
		return 0, fmt.Errorf("words.%s: %w", field, types.ErrUnknownField)
	}
	res, err := t.q.ExecContext(ctx,
		"UPDATE words SET "+col+" = ? WHERE word_id = ?", value, id)
	if err != nil {
		return 0, fmt.Errorf("updating word %s: %w", field, err)
	}
	return res.RowsAffected()
}

// Delete removes a word row. Returns the number of rows deleted.
func (t *WordsTable) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, "DELETE FROM words WHERE word_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting word: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByJournal removes every word belonging to one journal.
func (t *WordsTable) DeleteByJournal(ctx context.Context, journalID int64) (int64, error) {
	res, err := t.q.ExecContext(ctx, "DELETE FROM words WHERE journal_id = ?", journalID)
	if err != nil {
		return 0, fmt.Errorf("deleting journal words: %w", err)
	}
	return res.RowsAffected()
}

func (t *WordsTable) query(ctx context.Context, query string, args ...any) ([]*types.Word, error) {
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching words: %w", err)
	}
	defer rows.Close()

	var results []*types.Word
	for rows.Next() {
		w, err := hydrateWord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, w)
	}
	return results, rows.Err()
}

func hydrateWord(s rowScanner) (*types.Word, error) {
	var w types.Word
	var createdAt string
	if err := s.Scan(&w.WordID, &w.JournalID, &w.Text, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning word: %w", err)
	}
	var err error
	w.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing word created_at: %w", err)
	}
	return &w, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/lexstash/lexstash/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "lexstash.db"

// DBTX is the subset of database/sql operations shared by *sql.DB and
// *sql.Tx. Table accessors are bound to one of the two, so the same query
// code serves both direct access and transactional access.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Backend owns the SQLite connection and hands out table accessors.
// Attach opens (or creates) the database file and applies the schema;
// Detach closes the connection.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// Tx bundles table accessors bound to a single read-write transaction.
// All accessors share the same *sql.Tx; the transaction commits when the
// WithTx body returns nil and rolls back otherwise.
type Tx struct {
	Journals   *JournalsTable
	Groups     *GroupsTable
	Words      *WordsTable
	WordGroups *WordGroupsTable
}

// NewBackend creates a detached backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens the database under config.DataDir, creating the directory
// and the schema as needed. Returns ErrAlreadyAttached if called twice.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// modernc.org/sqlite serializes on a single connection; more would
	// surface SQLITE_BUSY under concurrent transactions.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: detaching a detached backend
// succeeds. Table accessors obtained earlier fail on their next operation.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Journals returns the journals table accessor bound to the live database.
func (b *Backend) Journals() (*JournalsTable, error) {
	q, err := b.liveDB()
	if err != nil {
		return nil, err
	}
	return &JournalsTable{q: q}, nil
}

// Groups returns the groups table accessor bound to the live database.
func (b *Backend) Groups() (*GroupsTable, error) {
	q, err := b.liveDB()
	if err != nil {
		return nil, err
	}
	return &GroupsTable{q: q}, nil
}

// Words returns the words table accessor bound to the live database.
func (b *Backend) Words() (*WordsTable, error) {
	q, err := b.liveDB()
	if err != nil {
		return nil, err
	}
	return &WordsTable{q: q}, nil
}

// WordGroups returns the word-group link table accessor bound to the live
// database.
func (b *Backend) WordGroups() (*WordGroupsTable, error) {
	q, err := b.liveDB()
	if err != nil {
		return nil, err
	}
	return &WordGroupsTable{q: q}, nil
}

func (b *Backend) liveDB() (DBTX, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// WithTx runs fn inside a single read-write transaction. The transaction
// commits when fn returns nil; any error (including an AbortError built
// with types.Abort) rolls it back and is returned to the caller.
func (b *Backend) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return types.ErrDetached
	}
	db := b.db
	b.mu.Unlock()

	sqlTx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{
		Journals:   &JournalsTable{q: sqlTx},
		Groups:     &GroupsTable{q: sqlTx},
		Words:      &WordsTable{q: sqlTx},
		WordGroups: &WordGroupsTable{q: sqlTx},
	}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

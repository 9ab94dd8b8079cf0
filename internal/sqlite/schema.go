// Package sqlite implements the SQLite persistence engine for lexstash.
// See docs/ARCHITECTURE.md § Persistence Engine.
package sqlite

// Schema DDL. Identifiers are engine-assigned via AUTOINCREMENT; the
// database file is persistent between runs, so every statement is
// IF NOT EXISTS.
const (
	createJournals = `CREATE TABLE IF NOT EXISTS journals (
    journal_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    root_group_id INTEGER,
    default_group_id INTEGER,
    created_at TEXT NOT NULL
);`

	createGroups = `CREATE TABLE IF NOT EXISTS groups (
    group_id INTEGER PRIMARY KEY AUTOINCREMENT,
    journal_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createWords = `CREATE TABLE IF NOT EXISTS words (
    word_id INTEGER PRIMARY KEY AUTOINCREMENT,
    journal_id INTEGER NOT NULL,
    text TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createWordsInGroups = `CREATE TABLE IF NOT EXISTS words_in_groups (
    word_id INTEGER NOT NULL,
    group_id INTEGER NOT NULL,
    PRIMARY KEY (word_id, group_id)
);`

	createIndexes = `
CREATE INDEX IF NOT EXISTS idx_groups_journal ON groups(journal_id);
CREATE INDEX IF NOT EXISTS idx_words_journal ON words(journal_id);
CREATE INDEX IF NOT EXISTS idx_wig_group ON words_in_groups(group_id);
`
)

// schemaStatements lists the DDL executed at Attach, in order.
var schemaStatements = []string{
	createJournals,
	createGroups,
	createWords,
	createWordsInGroups,
	createIndexes,
}

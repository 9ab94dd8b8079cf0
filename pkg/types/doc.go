// Package types defines the vocabulary entities (Journal, Group, Word,
// WordGroupLink), the backend Config, and the standard error values shared
// by the storage engine and the stash modules.
// See docs/ARCHITECTURE.md § Data Model.
package types

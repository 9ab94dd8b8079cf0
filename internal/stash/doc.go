// Package stash implements the entity-store synchronization engine: one
// module per entity type, each holding an authoritative in-memory EntrySet,
// an optional active-selection pointer, and write-through persistence with
// cascading, transactional multi-table mutations.
//
// The Stash aggregator wires the modules together. Activation couples to
// eager loading of the next tier down (activating a journal fetches its
// groups; activating a group fetches its words) and deactivation to eager
// unloading, so dependent modules never hold state for a non-active parent.
//
// See docs/ARCHITECTURE.md § Stash Engine.
package stash

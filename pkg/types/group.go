package types

import "time"

// Group is a named collection of words within a journal. Words relate to
// groups many-to-many through WordGroupLink rows. Exactly one group per
// journal is the root group (referenced by Journal.RootGroupID).
type Group struct {
	GroupID   int64     // Engine-assigned identifier, unique across groups.
	JournalID int64     // Owning journal.
	Name      string    // Human-readable name (required, non-empty).
	CreatedAt time.Time // Timestamp of creation.
}

// IsRootOf reports whether the group is the root group of the given journal.
func (g *Group) IsRootOf(j *Journal) bool {
	return j != nil && g.JournalID == j.JournalID && g.GroupID == j.RootGroupID
}

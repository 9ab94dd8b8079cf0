package types

import (
	"strings"
	"time"
)

// RootGroupName is the name given to the group created atomically with each
// journal. The root group is structurally distinguished: it cannot be
// renamed, deleted, or set as the journal's default group.
const RootGroupName = "All words"

// Journal is the top-level user-owned entity. Every journal owns its groups
// and words; deleting a journal removes all of them.
type Journal struct {
	JournalID      int64     // Engine-assigned identifier, unique across journals.
	Name           string    // Human-readable name (required, non-empty).
	RootGroupID    int64     // Identifier of the mandatory root group, back-filled at creation.
	DefaultGroupID *int64    // Optional default group for new words; never the root group.
	CreatedAt      time.Time // Timestamp of creation.
}

// HasDefaultGroup reports whether the journal has a default group set.
func (j *Journal) HasDefaultGroup() bool {
	return j.DefaultGroupID != nil
}

// ValidateName checks that a journal name is usable after trimming.
// Returns ErrNameEmpty for blank names.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameEmpty
	}
	return name, nil
}

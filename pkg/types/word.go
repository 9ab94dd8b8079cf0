package types

import (
	"strings"
	"time"
)

// Word is a single vocabulary entry owned by a journal. Group membership is
// expressed through WordGroupLink rows, never stored on the word itself.
type Word struct {
	WordID    int64     // Engine-assigned identifier, unique across words.
	JournalID int64     // Owning journal.
	Text      string    // The word or phrase (required, non-empty).
	CreatedAt time.Time // Timestamp of creation.
}

// ValidateText checks that word text is usable after trimming.
// Returns ErrTextEmpty for blank text.
func ValidateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrTextEmpty
	}
	return text, nil
}

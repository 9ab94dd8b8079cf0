package stash

import (
	"context"
	"log/slog"

	"github.com/lexstash/lexstash/internal/sqlite"
)

// Stash owns one module per entity type and is the shared handle each
// module uses to reach its siblings. Cross-module access is wired at
// construction through narrow capability interfaces, so a module only sees
// the operations it actually cascades into.
type Stash struct {
	Journals *Journals
	Groups   *Groups
	Words    *Words
}

// New builds the module graph on top of an attached backend. The backend
// must stay attached for the lifetime of the stash.
func New(backend *sqlite.Backend, log *slog.Logger) (*Stash, error) {
	if log == nil {
		log = slog.Default()
	}

	jt, err := backend.Journals()
	if err != nil {
		return nil, err
	}
	gt, err := backend.Groups()
	if err != nil {
		return nil, err
	}
	wt, err := backend.Words()
	if err != nil {
		return nil, err
	}
	lt, err := backend.WordGroups()
	if err != nil {
		return nil, err
	}

	words := newWords(backend, wt, lt, log)
	groups := newGroups(backend, gt, log)
	journals := newJournals(backend, jt, log)

	// Cascade wiring. The interfaces keep each edge narrow; the modules
	// never see the whole stash.
	words.groups = groups
	groups.words = words
	groups.journals = journals
	journals.groups = groups

	return &Stash{Journals: journals, Groups: groups, Words: words}, nil
}

// Fetch loads the top-tier journal set. Dependent tiers load on
// activation.
func (s *Stash) Fetch(ctx context.Context) error {
	return s.Journals.Fetch(ctx)
}

// Reset clears every module's in-memory state without touching the
// database. The journal reset cascades through groups into words.
func (s *Stash) Reset() {
	s.Journals.Reset()
}

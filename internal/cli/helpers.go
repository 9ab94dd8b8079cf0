package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/lexstash/lexstash/internal/paths"
	"github.com/lexstash/lexstash/internal/sqlite"
	"github.com/lexstash/lexstash/internal/stash"
	"github.com/lexstash/lexstash/pkg/types"
)

// session bundles an attached backend, the stash built on it, and the
// config directory used for session state.
type session struct {
	configDir string
	backend   *sqlite.Backend
	stash     *stash.Stash
}

// openSession resolves directories, attaches the backend, builds the stash,
// fetches the journal tier, and replays the persisted active selection.
func openSession(ctx context.Context) (*session, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	cfg := types.Config{DataDir: dataDir, VaultID: v.GetString(cfgKeyVaultID)}
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	log := slog.Default()
	if cfg.VaultID != "" {
		log = log.With("vault_id", cfg.VaultID)
	}
	st, err := stash.New(backend, log)
	if err != nil {
		backend.Detach()
		return nil, err
	}
	if err := st.Fetch(ctx); err != nil {
		backend.Detach()
		return nil, fmt.Errorf("fetch journals: %w", err)
	}

	s := &session{configDir: configDir, backend: backend, stash: st}
	s.replayState(ctx)
	return s, nil
}

// replayState re-activates the journal and group recorded in state.yaml.
// Selections that no longer resolve are dropped silently.
func (s *session) replayState(ctx context.Context) {
	state := loadState(s.configDir)
	if state.ActiveJournalID == nil {
		return
	}
	if err := s.stash.Journals.SetActiveID(ctx, state.ActiveJournalID); err != nil {
		return
	}
	if state.ActiveGroupID == nil {
		return
	}
	_ = s.stash.Groups.SetActiveID(ctx, state.ActiveGroupID)
}

// persistState writes the stash's current active pointers to state.yaml.
func (s *session) persistState() error {
	return saveState(s.configDir, sessionState{
		ActiveJournalID: s.stash.Journals.ActiveID(),
		ActiveGroupID:   s.stash.Groups.ActiveID(),
	})
}

// Close detaches the backend.
func (s *session) Close() error {
	return s.backend.Detach()
}

// activeJournal returns the active journal or a user-facing error.
func (s *session) activeJournal() (*types.Journal, error) {
	j := s.stash.Journals.Active()
	if j == nil {
		return nil, fmt.Errorf("no active journal; run \"lexstash journal use <id>\" first")
	}
	return j, nil
}

// parseID parses a positive decimal entity id from a CLI argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

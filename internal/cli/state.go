// Session state for the lexstash CLI. The stash engine keeps active
// pointers in memory only; the CLI persists the last selection in
// state.yaml and replays it through SetActiveID at startup.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const stateFileName = "state.yaml"

// sessionState mirrors state.yaml.
type sessionState struct {
	ActiveJournalID *int64 `yaml:"active_journal_id,omitempty"`
	ActiveGroupID   *int64 `yaml:"active_group_id,omitempty"`
}

// loadState reads state.yaml from the config directory. A missing or
// unreadable file yields an empty state.
func loadState(configDir string) sessionState {
	var st sessionState
	data, err := os.ReadFile(filepath.Join(configDir, stateFileName))
	if err != nil {
		return st
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return sessionState{}
	}
	return st
}

// saveState writes state.yaml to the config directory.
func saveState(configDir string, st sessionState) error {
	data, err := yaml.Marshal(&st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, stateFileName), data, 0o644)
}

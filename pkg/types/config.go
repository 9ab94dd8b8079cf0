package types

import "errors"

// Config holds the parameters for Backend.Attach.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
	VaultID string `json:"vault_id,omitempty" yaml:"vault_id,omitempty"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data_dir must not be empty")
)

// Validate checks that the Config is well-formed. VaultID is informational
// (stamped by the CLI at init) and is not validated.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexstash/lexstash/internal/paths"
	"github.com/lexstash/lexstash/internal/sqlite"
	"github.com/lexstash/lexstash/pkg/types"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize lexstash storage",
		Long:  "Create the configuration and data directories, then initialize the database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	// loadConfig creates the config directory and a default config.yaml
	// (with a fresh vault id) on first run.
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	// Initialize the data directory by attaching once.
	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{DataDir: dataDir, VaultID: v.GetString(cfgKeyVaultID)}); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := backend.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Lexstash initialized\nconfig: %s\ndata:   %s\n", configDir, dataDir)
	return nil
}

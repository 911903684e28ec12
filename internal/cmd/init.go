package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"praia/internal/config"
	"praia/internal/storage/filesystem"
)

// newInitCmd creates the init command. It does not use the provider: there is
// no config to discover yet.
func newInitCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a praia.yaml and storage directory here",
		Long: `Initialize a praia project in the current directory.

Writes a default praia.yaml and creates the storage directory with an empty
index, so other commands work immediately from here or any subdirectory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("cannot get current directory: %w", err)
			}

			configPath := filepath.Join(cwd, config.ConfigFile)
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists", configPath)
			}

			if err := config.WriteDefault(configPath); err != nil {
				return err
			}

			cfg := config.Default()
			cfg.Dir = cwd
			store, err := filesystem.Open(cfg.Root())
			if err != nil {
				return err
			}
			if err := store.Close(); err != nil {
				return err
			}

			fmt.Fprintf(provider.Out, "Initialized praia store in %s\n", cfg.Root())
			return nil
		},
	}
	return cmd
}

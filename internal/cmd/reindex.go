package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"praia/internal/storage/filesystem"
)

// newReindexCmd creates the reindex command. It opens the store itself
// rather than through the provider, because a corrupted index would make the
// normal open fail before it could be discarded.
func newReindexCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the index from the directory tree",
		Long: `Discard the cached index and rebuild it by scanning the storage directory.

This is the recovery path for a corrupted index.txt. Entity counts are
recomputed from the highest ids present on disk, so ids already handed out
are never reissued.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(provider.ConfigPath, provider.Dir)
			if err != nil {
				return err
			}
			root := cfg.Root()

			if err := os.Remove(filepath.Join(root, filesystem.IndexFile)); err != nil && !os.IsNotExist(err) {
				return err
			}

			store, err := filesystem.Open(root, filesystem.WithLogger(provider.newLogger()))
			if err != nil {
				return err
			}
			defer store.Close()

			out := provider.Out
			if out == nil {
				out = os.Stdout
			}
			fmt.Fprintf(out, "Rebuilt index for %d issues\n", store.IssueCount())
			return nil
		},
	}
	return cmd
}

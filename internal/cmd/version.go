package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of praia. It can be overridden at build
// time via -ldflags "-X praia/internal/cmd.Version=1.2.3".
var Version = "0.3.0"

func newVersionCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(provider.Out, "praia version %s\n", Version)
			return nil
		},
	}
	return cmd
}

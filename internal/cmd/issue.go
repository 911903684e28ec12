package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newIssueCmd creates the issue command.
func newIssueCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Create a new issue from stdin",
		Long: `Create a new issue.

The issue body is read from stdin until EOF; its first line doubles as the
title in list output. Empty input aborts without creating anything. Prints
the new issue id.

Examples:
  echo "login is broken" | praia issue
  praia issue < report.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			body, err := readBody(cmd.InOrStdin(), app.Err)
			if err != nil {
				return err
			}

			id, err := app.Store.CreateIssue(ctx, body)
			if err != nil {
				return err
			}
			if err := app.Store.SaveIndex(ctx); err != nil {
				return err
			}

			fmt.Fprintln(app.Out, id)
			return nil
		},
	}
	return cmd
}

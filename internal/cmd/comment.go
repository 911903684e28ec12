package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCommentCmd creates the comment command.
func newCommentCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <issue-id>",
		Short: "Add a comment to an issue from stdin",
		Long: `Add a comment to an issue.

The issue header is echoed first so you can confirm the target, then the
comment body is read from stdin until EOF. Prints the new comment id.

Examples:
  echo "fixed in abc123" | praia comment 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			issueID, err := parseID(args[0])
			if err != nil {
				return err
			}

			issue, err := app.Store.GetIssue(ctx, issueID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Err, "/%d\t%s\n", issue.ID, firstLine(issue.Content))

			body, err := readBody(cmd.InOrStdin(), app.Err)
			if err != nil {
				return err
			}

			commentID, err := app.Store.CreateComment(ctx, issueID, body)
			if err != nil {
				return err
			}
			if err := app.Store.SaveIndex(ctx); err != nil {
				return err
			}

			fmt.Fprintln(app.Out, commentID)
			return nil
		},
	}
	return cmd
}

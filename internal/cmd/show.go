package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newShowCmd creates the show command.
func newShowCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <issue-id> [comment-id]",
		Short: "Show a single issue or comment",
		Long: `Show the full content of one issue, or of one comment of an issue.

Examples:
  praia show 3      # issue 3 (its comment 0)
  praia show 3 2    # comment 2 of issue 3`,
		Args: cobra.RangeArgs(1, 2),
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

			if len(args) == 2 {
				commentID, err := parseID(args[1])
				if err != nil {
					return err
				}
				comment, err := app.Store.GetComment(ctx, issueID, commentID)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "/%d/%d\t%s\n\n", comment.IssueID, comment.CommentID,
					comment.Created.Format(time.RFC1123Z))
				printBody(app, comment.Content)
				return nil
			}

			issue, err := app.Store.GetIssue(ctx, issueID)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "/%d\t%s\n\n", issue.ID, issue.Created.Format(time.RFC1123Z))
			printBody(app, issue.Content)
			return nil
		},
	}
	return cmd
}

func printBody(app *App, content string) {
	body := strings.TrimRight(content, " \t\n")
	if body != "" {
		fmt.Fprintln(app.Out, body)
	}
}

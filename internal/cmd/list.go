package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"praia/internal/ui"
)

// newListCmd creates the list command.
func newListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [issue-id]",
		Short: "List issues, or the comments of one issue",
		Long: `List all issues, or the comments of a single issue.

Issues deleted from disk behind the store's back are skipped silently; any
other read failure is reported on stderr and listing continues.

Examples:
  praia list        # one line per issue
  praia list 3      # all comments of issue 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 1 {
				issueID, err := parseID(args[0])
				if err != nil {
					return err
				}
				return listComments(ctx, app, issueID)
			}
			return listIssues(ctx, app)
		},
	}
	return cmd
}

// listIssues prints one line per issue: a table on a terminal, "/<id>\t<title>"
// when piped.
func listIssues(ctx context.Context, app *App) error {
	if ui.IsTerminal(app.Out) {
		tbl := ui.NewTable(app.Out, "ID", "CREATED", "TITLE")
		for issue, err := range app.Store.Issues(ctx) {
			if err != nil {
				fmt.Fprintln(app.Err, ui.ErrorStyle.Render(err.Error()))
				continue
			}
			tbl.AddRow(issue.ID, issue.Created.Format(time.DateTime), firstLine(issue.Content))
		}
		tbl.Print()
		return nil
	}

	for issue, err := range app.Store.Issues(ctx) {
		if err != nil {
			fmt.Fprintln(app.Err, err)
			continue
		}
		fmt.Fprintf(app.Out, "/%d\t%s\n", issue.ID, firstLine(issue.Content))
	}
	return nil
}

// listComments prints every comment of an issue with its timestamp, body
// indented.
func listComments(ctx context.Context, app *App, issueID uint32) error {
	seq, err := app.Store.Comments(ctx, issueID)
	if err != nil {
		return err
	}

	for comment, err := range seq {
		if err != nil {
			fmt.Fprintln(app.Err, err)
			continue
		}

		header := fmt.Sprintf("/%d/%d\t%s", comment.IssueID, comment.CommentID,
			comment.Created.Format(time.RFC1123Z))
		if ui.IsTerminal(app.Out) {
			header = ui.DimStyle.Render(header)
		}
		fmt.Fprintf(app.Out, "%s\n\n", header)

		body := strings.TrimRight(comment.Content, " \t\n")
		for _, line := range strings.Split(body, "\n") {
			fmt.Fprintf(app.Out, "\t%s\n", line)
		}
		fmt.Fprintln(app.Out)
	}
	return nil
}

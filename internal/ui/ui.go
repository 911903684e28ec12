// Package ui provides styling and output helpers for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"golang.org/x/term"
)

var (
	// IDStyle renders entity ids.
	IDStyle = lipgloss.NewStyle().Bold(true)

	// DimStyle renders secondary detail such as timestamps.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// ErrorStyle renders element-level enumeration failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)

// IsTerminal reports whether w is a terminal. Plain, pipe-friendly output is
// used when it is not.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewTable creates a table with shared styling: padded columns, bold first
// column, ANSI-aware width calculation.
func NewTable(w io.Writer, headers ...interface{}) table.Table {
	tbl := table.New(headers...)
	tbl.WithWriter(w)
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return IDStyle.Render(fmt.Sprintf(format, vals...))
	})
	return tbl
}

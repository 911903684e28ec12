package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// parseID parses a decimal issue or comment id argument.
func parseID(arg string) (uint32, error) {
	n, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint32(n), nil
}

// readBody reads an entity body from in until EOF, rejecting blank input.
// When in is a terminal a short hint is printed to errOut, since the command
// would otherwise sit waiting with no prompt.
func readBody(in io.Reader, errOut io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(errOut, "Enter text, end with ^D:")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading from stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("input empty")
	}
	return string(data), nil
}

// firstLine returns the first line of content, trimmed, for one-line
// summaries.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// praia is a minimal issue tracker that stores issues as flat files.
package main

import (
	"fmt"
	"os"

	"praia/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Command bondgen generates value types and Compact Binary writers and
// readers from Bond JSON schemas.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/bondgen/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// ExitErrors were already reported in the requested format.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

// Command agentsync distributes agent definitions into the directories the
// agent runtime reads, scaffolds Clean Architecture projects, and validates
// layer boundaries.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cleanarch/agentsync/internal/cli"
)

func main() {
	if err := cli.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

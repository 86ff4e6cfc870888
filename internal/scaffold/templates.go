package scaffold

// Built-in seed file templates for a Clean Architecture Go project. Paths and
// contents are rendered with text/template against Data.

const goModTemplate = `module {{.Module}}

go 1.25
`

const mainTemplate = `package main

import (
	"fmt"
	"os"

	"{{.Module}}/internal/presentation/cli"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
`

const domainDocTemplate = `// Package domain holds the enterprise rules of {{.Title}}.
//
// Nothing in this package may import application, infrastructure, or
// presentation code, nor any framework.
package domain
`

const domainErrorsTemplate = `package domain

import "errors"

// ErrNotFound indicates a requested entity does not exist.
var ErrNotFound = errors.New("entity not found")
`

const applicationDocTemplate = `// Package application orchestrates {{.Title}} use cases over domain types.
//
// It may import domain, never infrastructure or presentation.
package application
`

const infrastructureDocTemplate = `// Package infrastructure adapts external systems (storage, messaging,
// external services) to the interfaces the application layer defines.
package infrastructure
`

const presentationCLITemplate = `// Package cli is the command-line entry point of {{.Title}}.
package cli

// Run executes the application with the given arguments.
func Run(args []string) error {
	_ = args
	return nil
}
`

const readmeTemplate = `# {{.Title}}

A Clean Architecture Go project.

Layers, outermost first: presentation, infrastructure, application, domain.
Dependencies point inward only; run ` + "`agentsync validate ./internal`" + ` to
check the layer rules.
`

const gitignoreTemplate = `bin/
dist/
*.test
*.out
.env
`

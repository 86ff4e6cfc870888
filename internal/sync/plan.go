package sync

import (
	"fmt"
	"io"
	"strings"
)

// Action is the kind of file operation in a plan.
type Action string

const (
	// ActionCopy copies a source file to the destination.
	ActionCopy Action = "copy"

	// ActionDelete removes a stale destination file (mirror mode only).
	ActionDelete Action = "delete"
)

// Operation is a single planned file action, identified by the path relative
// to the sync roots (slash-separated).
type Operation struct {
	Path   string
	Action Action
}

// Plan is the computed, inspectable set of file operations for one sync.
// Deletions are ordered before copies.
type Plan struct {
	// Source is the absolute source directory.
	Source string
	// Destination is the absolute destination directory.
	Destination string
	// Operations holds deletions first, then copies, each sorted by path.
	Operations []Operation
}

// Copies returns the relative paths scheduled for copying.
func (p *Plan) Copies() []string {
	return p.filter(ActionCopy)
}

// Deletes returns the relative paths scheduled for deletion.
func (p *Plan) Deletes() []string {
	return p.filter(ActionDelete)
}

func (p *Plan) filter(action Action) []string {
	var paths []string
	for _, op := range p.Operations {
		if op.Action == action {
			paths = append(paths, op.Path)
		}
	}
	return paths
}

// Render writes the planned actions to w, one line per operation. Dry-run
// and real execution print this identical output.
func (p *Plan) Render(w io.Writer) {
	for _, op := range p.Operations {
		fmt.Fprintf(w, "  %-6s %s\n", op.Action, op.Path)
	}
}

// Result contains the outcome of executing a plan.
type Result struct {
	// Copied is the number of files copied.
	Copied int
	// Deleted is the number of files deleted.
	Deleted int
	// Mirror records the mode in effect.
	Mirror bool
	// DryRun indicates no changes were made.
	DryRun bool
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}

	mode := "merge"
	if r.Mirror {
		mode = "mirror"
	}
	sb.WriteString(fmt.Sprintf("Synced in %s mode\n", mode))
	sb.WriteString(fmt.Sprintf("  Copied:  %d\n", r.Copied))
	sb.WriteString(fmt.Sprintf("  Deleted: %d\n", r.Deleted))

	return sb.String()
}

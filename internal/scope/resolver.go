package scope

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleanarch/agentsync/internal/git"
	"github.com/cleanarch/agentsync/internal/logging"
)

// DefaultSubdir is the path under the scope root where agent definitions
// live, matching what the agent runtime reads.
const DefaultSubdir = ".claude/agents"

// Destination is a resolved sync target.
type Destination struct {
	// Path is the absolute destination directory.
	Path string
	// Label is a short human description for plan output.
	Label string
	// Scope records which scope produced this destination.
	Scope Scope
}

// Resolver maps a Scope to a Destination. The git client and home lookup are
// injectable for tests.
type Resolver struct {
	// Git answers the repository-root query for ScopeProject.
	Git git.Client
	// HomeDir returns the user's home directory. Defaults to os.UserHomeDir.
	HomeDir func() (string, error)
	// WorkDir is the directory the repository-root query starts from.
	// Defaults to the process working directory.
	WorkDir string
	// Subdir is the relative path appended to the scope root.
	// Defaults to DefaultSubdir.
	Subdir string
}

// NewResolver creates a resolver with production defaults.
func NewResolver() *Resolver {
	return &Resolver{
		Git:     git.NewShellClient(),
		HomeDir: os.UserHomeDir,
		Subdir:  DefaultSubdir,
	}
}

// Resolve maps scope to a concrete destination. For ScopeProject the current
// directory must be inside a git working tree; the destination directory
// itself is not created here, that happens at execution time.
func (r *Resolver) Resolve(ctx context.Context, s Scope) (Destination, error) {
	subdir := r.Subdir
	if subdir == "" {
		subdir = DefaultSubdir
	}

	switch s {
	case ScopeProject:
		root, err := r.Git.RepoRoot(ctx, r.workDir())
		if err != nil {
			return Destination{}, fmt.Errorf("cannot resolve project scope: %w", err)
		}
		dest := Destination{
			Path:  filepath.Join(root, filepath.FromSlash(subdir)),
			Label: fmt.Sprintf("project (%s)", root),
			Scope: ScopeProject,
		}
		logging.Debug("resolved destination", logging.Scope(string(s)), logging.Path(dest.Path))
		return dest, nil

	case ScopeHome:
		homeFn := r.HomeDir
		if homeFn == nil {
			homeFn = os.UserHomeDir
		}
		home, err := homeFn()
		if err != nil {
			return Destination{}, fmt.Errorf("cannot resolve home scope: %w", err)
		}
		dest := Destination{
			Path:  filepath.Join(home, filepath.FromSlash(subdir)),
			Label: "home",
			Scope: ScopeHome,
		}
		logging.Debug("resolved destination", logging.Scope(string(s)), logging.Path(dest.Path))
		return dest, nil

	default:
		return Destination{}, fmt.Errorf("unknown scope %q", s)
	}
}

func (r *Resolver) workDir() string {
	if r.WorkDir != "" {
		return r.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

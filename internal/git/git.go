// Package git answers version-control queries by shelling out to the git
// command.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotARepository indicates the working directory is not inside a git
// working tree.
var ErrNotARepository = errors.New("not inside a git repository")

// Client provides the version-control queries agentsync needs.
type Client interface {
	// RepoRoot returns the absolute path of the repository root containing
	// dir, or ErrNotARepository.
	RepoRoot(ctx context.Context, dir string) (string, error)
}

// ShellClient implements Client by invoking the git binary.
type ShellClient struct{}

// NewShellClient creates a git client that uses the git command.
func NewShellClient() *ShellClient {
	return &ShellClient{}
}

// RepoRoot runs `git rev-parse --show-toplevel` in dir.
func (c *ShellClient) RepoRoot(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--show-toplevel")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// git exits 128 with "not a git repository" on stderr.
			return "", fmt.Errorf("%w: %s", ErrNotARepository, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}

	root := strings.TrimSpace(stdout.String())
	if root == "" {
		return "", ErrNotARepository
	}
	return root, nil
}

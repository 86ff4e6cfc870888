// Package discover enumerates candidate agent directories for syncing.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleanarch/agentsync/internal/logging"
)

// Candidate is a directory that can be offered as a sync source.
type Candidate struct {
	// Name is the base name shown in selection menus.
	Name string
	// Path is the absolute path to the directory.
	Path string
}

// Noise directories that are never agent sources.
var noiseDirs = map[string]struct{}{
	"__pycache__":  {},
	"node_modules": {},
	"vendor":       {},
}

// List returns the immediate child directories of basePath that can serve as
// sync sources, in lexicographic order. Hidden directories and well-known
// noise directories are excluded.
func List(basePath string) ([]Candidate, error) {
	return ListExcluding(basePath, nil)
}

// ListExcluding is List with additional directory names to skip, typically
// from the discover.exclude config list.
func ListExcluding(basePath string, exclude []string) ([]Candidate, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", basePath, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", abs, err)
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	var candidates []Candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, noise := noiseDirs[name]; noise {
			continue
		}
		if _, skip := excluded[name]; skip {
			continue
		}
		candidates = append(candidates, Candidate{
			Name: name,
			Path: filepath.Join(abs, name),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	logging.Debug("discovered candidates",
		logging.Path(abs),
		logging.Count(len(candidates)),
	)

	return candidates, nil
}

// Names returns the display names of candidates, in order.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

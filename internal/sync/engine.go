package sync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleanarch/agentsync/internal/logging"
	"github.com/cleanarch/agentsync/internal/progress"
)

// Engine computes and executes sync plans.
type Engine struct {
	opts Options
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// Plan walks source (and, in mirror mode, destination) and computes the
// ordered operation set. Every regular source file becomes a copy; in mirror
// mode every destination file absent from the source becomes a delete. A
// missing destination is not an error.
func (e *Engine) Plan(source, destination string) (*Plan, error) {
	copies, err := relativeFiles(source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source: %w", err)
	}

	plan := &Plan{
		Source:      source,
		Destination: destination,
	}

	if e.opts.Mirror {
		existing, err := relativeFiles(destination)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to scan destination: %w", err)
		}

		copySet := make(map[string]struct{}, len(copies))
		for _, rel := range copies {
			copySet[rel] = struct{}{}
		}

		for _, rel := range existing {
			if _, keep := copySet[rel]; !keep {
				plan.Operations = append(plan.Operations, Operation{Path: rel, Action: ActionDelete})
			}
		}
	}

	for _, rel := range copies {
		plan.Operations = append(plan.Operations, Operation{Path: rel, Action: ActionCopy})
	}

	logging.Debug("computed plan",
		logging.Operation("plan"),
		logging.Mode(e.opts.Mode()),
		logging.Count(len(plan.Operations)),
	)

	return plan, nil
}

// Execute applies a plan. Deletions run before copies so a copied file can
// never be removed afterwards. The destination directory is created before
// any operation. In dry-run mode nothing on the filesystem changes.
//
// Execution is fail-fast: the first I/O error aborts the remaining plan,
// leaving the destination partially synced.
func (e *Engine) Execute(ctx context.Context, plan *Plan) (*Result, error) {
	result := &Result{
		Mirror: e.opts.Mirror,
		DryRun: e.opts.DryRun,
	}

	deletes := plan.Deletes()
	copies := plan.Copies()

	if e.opts.DryRun {
		result.Copied = len(copies)
		result.Deleted = len(deletes)
		logging.Info("dry run complete",
			logging.Mode(e.opts.Mode()),
			logging.Count(len(plan.Operations)),
		)
		return result, nil
	}

	if err := os.MkdirAll(plan.Destination, 0o755); err != nil {
		return result, fmt.Errorf("failed to create destination %q: %w", plan.Destination, err)
	}

	for _, rel := range deletes {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		target := filepath.Join(plan.Destination, filepath.FromSlash(rel))
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("failed to delete %q: %w", target, err)
		}
		result.Deleted++
	}

	if len(deletes) > 0 {
		if err := pruneEmptyDirs(plan.Destination); err != nil {
			return result, err
		}
	}

	bar := progress.Simple(int64(len(copies)), "Copying")
	for _, rel := range copies {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		src := filepath.Join(plan.Source, filepath.FromSlash(rel))
		dst := filepath.Join(plan.Destination, filepath.FromSlash(rel))

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return result, fmt.Errorf("failed to create directory for %q: %w", dst, err)
		}
		if err := copyFile(src, dst); err != nil {
			return result, err
		}
		result.Copied++
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	logging.Info("sync complete",
		logging.Mode(e.opts.Mode()),
		logging.Count(result.Copied),
	)

	return result, nil
}

// relativeFiles returns the slash-separated relative paths of every regular
// file under root, sorted lexicographically. Symlinks and other non-regular
// entries are skipped.
func relativeFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

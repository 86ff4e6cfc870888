package sync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cleanarch/agentsync/internal/logging"
)

// copyFile copies a single file from src to dst, preserving permission bits.
// An existing dst is truncated and overwritten.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dst, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy content to %q: %w", dst, err)
	}

	logging.Debug("copied file", logging.Path(src))

	return nil
}

// pruneEmptyDirs removes directories under root that are empty after the
// delete pass, deepest first. The root itself is kept.
func pruneEmptyDirs(root string) error {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %q: %w", root, err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", dir, err)
		}
		if len(entries) == 0 {
			if err := os.Remove(dir); err != nil {
				return fmt.Errorf("failed to remove empty directory %q: %w", dir, err)
			}
			logging.Debug("pruned empty directory", logging.Path(dir))
		}
	}

	return nil
}

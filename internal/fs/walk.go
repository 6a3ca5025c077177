package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkEntry is one visited directory entry with its depth below the root.
type WalkEntry struct {
	Path  string
	Depth int // 1 for direct children of the root
	Info  fs.FileInfo
}

// WalkBounded walks the tree below root to at most maxDepth levels,
// calling fn for each entry. Symlinks are never followed and unreadable
// directories are skipped silently; an attacker-shaped tree must not be
// able to abort or loop the walk. fn returning false stops the walk.
func WalkBounded(root string, maxDepth int, fn func(e WalkEntry) bool) error {
	root = filepath.Clean(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Permission denied, vanished entry: skip, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		depth := pathDepth(root, path)
		if depth > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}

		if !fn(WalkEntry{Path: path, Depth: depth, Info: info}) {
			return filepath.SkipAll
		}
		return nil
	})
}

// pathDepth counts separators between root and path (1 = direct child).
func pathDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 1
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

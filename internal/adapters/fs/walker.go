// Package fs provides file system adapters for reading and staging sketches.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// SkippedDirs are never descended into when searching a workspace.
var SkippedDirs = []string{".git", ".jj", "node_modules", "build", ".sketchsense", ".vscode"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root, skipping SkippedDirs and any
// directory whose name matches one of ignores. Unreadable entries are skipped.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != root && w.skipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) skipDir(name string, ignores []string) bool {
	if slices.Contains(SkippedDirs, name) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

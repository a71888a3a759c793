// Package files finds Markdown files and rewrites them in place.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ryanlewis/mdgrid/internal/common"
)

// skippedDirs are never descended into during discovery.
var skippedDirs = []string{"node_modules", "vendor", "testdata"}

// IsMarkdown reports whether path has a Markdown file extension.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Discover expands roots into a list of Markdown files.
//
// Directories are walked recursively, skipping hidden directories, the
// skippedDirs and anything matching an exclude pattern. A file named directly
// must have a Markdown extension. Each path appears once, in the order it was
// first found.
func Discover(roots []string, exclude []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if !seen[key] {
			seen[key] = true
			out = append(out, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !IsMarkdown(root) {
				return nil, fmt.Errorf("%s: %w", root, common.ErrNotMarkdown)
			}
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == root {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			if d.IsDir() {
				if skipDir(d.Name()) || excluded(rel, exclude) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() || !IsMarkdown(path) || excluded(rel, exclude) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}
	return out, nil
}

func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	for _, s := range skippedDirs {
		if name == s {
			return true
		}
	}
	return false
}

// excluded matches rel (relative to the walk root) against each pattern,
// both as a whole path and by its base name.
func excluded(rel string, patterns []string) bool {
	slashed := filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, slashed); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}

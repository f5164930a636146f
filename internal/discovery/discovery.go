// Package discovery walks source trees and selects the files the extraction
// engine should process. Dialect selection happens here, once per file, from
// the file extension; the engine never sniffs content to pick a parser.
package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/dialect"
	derrors "git.home.luguber.info/inful/thedoc/internal/errors"
	"git.home.luguber.info/inful/thedoc/internal/logfields"
)

// SourceFile is one discovered source file and the dialect that owns it.
type SourceFile struct {
	Path         string // Absolute path to the file
	RelativePath string // Path relative to its source root
	Root         string // The source root this file was found under
	Extension    string // File extension, with leading dot
	Dialect      string // Name of the dialect that will parse it
}

// Discovery finds parseable source files under configured roots.
type Discovery struct {
	roots    []string
	excludes []string
	registry *dialect.Registry
}

// New creates a discovery over the given roots. excludes holds glob patterns
// matched against file base names and individual directory names (e.g.
// "*.generated.swift", "node_modules", ".git").
func New(roots, excludes []string, registry *dialect.Registry) *Discovery {
	return &Discovery{roots: roots, excludes: excludes, registry: registry}
}

// Discover walks all roots and returns the files to extract, in walk order.
// A missing root is skipped with a warning rather than failing the run.
func (d *Discovery) Discover() ([]SourceFile, error) {
	var files []SourceFile

	for _, root := range d.roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, derrors.DiscoveryError(err)
		}
		if _, err := os.Stat(absRoot); os.IsNotExist(err) {
			slog.Warn("Source root not found", logfields.Path(root))
			continue
		}

		rootFiles, err := d.walkRoot(absRoot)
		if err != nil {
			return nil, derrors.DiscoveryError(err)
		}
		files = append(files, rootFiles...)
	}

	slog.Info("Source files discovered", logfields.Count(len(files)))
	return files, nil
}

func (d *Discovery) walkRoot(root string) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != root && d.excluded(entry.Name()) {
				slog.Debug("Skipping excluded directory", logfields.Path(path))
				return filepath.SkipDir
			}
			return nil
		}

		if d.excluded(entry.Name()) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		dl, ok := d.registry.ByExtension(ext)
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = entry.Name()
		}

		files = append(files, SourceFile{
			Path:         path,
			RelativePath: rel,
			Root:         root,
			Extension:    ext,
			Dialect:      dl.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// excluded reports whether name matches any exclusion pattern. Invalid
// patterns are ignored; a bad glob should not hide the whole tree.
func (d *Discovery) excluded(name string) bool {
	for _, pattern := range d.excludes {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Paths projects the discovered files to their absolute paths, in order.
func Paths(files []SourceFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

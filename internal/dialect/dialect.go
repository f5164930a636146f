// Package dialect defines the capability shared by all comment dialects and a
// registry mapping file extensions to them. Dialect selection happens once per
// file, by extension; a parser never sniffs line-by-line for foreign syntax.
package dialect

import (
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

// Dialect is one comment syntax and tag vocabulary. Implementations are
// stateless: ParseFile carries everything through its arguments and the
// returned aggregate, so one Dialect value is safe for concurrent use
// across files.
type Dialect interface {
	// Name is the stable dialect identifier used in config and output.
	Name() string
	// Extensions lists the file extensions (with leading dot) this dialect owns.
	Extensions() []string
	// ParseFile extracts all documentation from one file's content. Block-level
	// problems become Diagnostics on the aggregate; only unrecoverable failures
	// return a non-nil error.
	ParseFile(path, content string) (*model.Documentation, error)
}

// Registry resolves dialects by name or file extension.
type Registry struct {
	byName map[string]Dialect
	byExt  map[string]Dialect
}

// NewRegistry builds a registry from the given dialects.
func NewRegistry(dialects ...Dialect) *Registry {
	r := &Registry{
		byName: make(map[string]Dialect),
		byExt:  make(map[string]Dialect),
	}
	for _, d := range dialects {
		r.byName[d.Name()] = d
		for _, ext := range d.Extensions() {
			r.byExt[strings.ToLower(ext)] = d
		}
	}
	return r
}

// ByName returns the dialect registered under name.
func (r *Registry) ByName(name string) (Dialect, bool) {
	d, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// ByExtension returns the dialect owning the extension (".swift", ".kt", ...).
func (r *Registry) ByExtension(ext string) (Dialect, bool) {
	d, ok := r.byExt[strings.ToLower(ext)]
	return d, ok
}

// Names lists registered dialect names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	return names
}

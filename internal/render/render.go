// Package render turns extraction results into the input tree for the static
// site generator: one markdown page per documented source file, an index page,
// a machine-readable documentation.yaml dump, and the mkdocs.yml site config.
// Running the site generator itself stays out of process.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/thedoc/internal/config"
	"git.home.luguber.info/inful/thedoc/internal/engine"
	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
	"git.home.luguber.info/inful/thedoc/internal/logfields"
	"git.home.luguber.info/inful/thedoc/internal/model"
)

// Generator writes the documentation tree for one extraction run.
type Generator struct {
	cfg       *config.Config
	outputDir string
}

// NewGenerator creates a renderer writing under outputDir.
func NewGenerator(cfg *config.Config, outputDir string) *Generator {
	return &Generator{cfg: cfg, outputDir: filepath.Clean(outputDir)}
}

// Generate writes all pages for the run. With Output.Clean set, the output
// directory is removed first so stale pages from renamed files disappear.
func (g *Generator) Generate(result *engine.Result) error {
	if g.cfg.Output.Clean {
		if err := os.RemoveAll(g.outputDir); err != nil {
			return apperrors.RenderError(g.outputDir, err)
		}
	}
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return apperrors.RenderError(g.outputDir, err)
	}

	paths := make([]string, 0, len(result.Docs))
	for path, doc := range result.Docs {
		if !doc.IsEmpty() {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	type navEntry struct {
		title string
		page  string
	}
	var nav []navEntry

	pages := pageFileNames(paths)
	for _, path := range paths {
		doc := result.Docs[path]
		page := pages[path]
		if err := g.writePage(page, doc); err != nil {
			return err
		}
		nav = append(nav, navEntry{title: pageTitle(path), page: page})
		slog.Debug("Rendered page", logfields.File(page), logfields.Count(doc.Len()))
	}

	if err := g.writeIndex(paths, pages, result); err != nil {
		return err
	}
	if err := g.writeAggregate(paths, result); err != nil {
		return err
	}

	navPages := make([]map[string]string, 0, len(nav)+1)
	navPages = append(navPages, map[string]string{"Overview": "index.md"})
	for _, entry := range nav {
		navPages = append(navPages, map[string]string{entry.title: entry.page})
	}
	if err := g.writeSiteConfig(navPages); err != nil {
		return err
	}

	slog.Info("Documentation generated",
		logfields.Path(g.outputDir),
		logfields.Count(len(paths)))
	return nil
}

// writePage renders one source file's aggregate to a markdown page.
func (g *Generator) writePage(page string, doc *model.Documentation) error {
	var b strings.Builder
	writeFrontMatter(&b, map[string]any{
		"title":       pageTitle(doc.SourceFile),
		"uid":         pageUID(doc.SourceFile),
		"source_file": doc.SourceFile,
		"dialect":     doc.Dialect,
	})

	b.WriteString("# " + pageTitle(doc.SourceFile) + "\n")

	for _, kind := range model.Kinds() {
		items := doc.Items(kind)
		if len(items) == 0 {
			continue
		}
		b.WriteString("\n## " + kind.Title() + "\n")
		for _, item := range items {
			writeItem(&b, item)
		}
	}

	target := filepath.Join(g.outputDir, page)
	if err := os.WriteFile(target, []byte(b.String()), 0o644); err != nil {
		return apperrors.RenderError(target, err)
	}
	return nil
}

// writeIndex renders the landing page with per-file item counts and any
// diagnostics collected during extraction.
func (g *Generator) writeIndex(paths []string, pages map[string]string, result *engine.Result) error {
	var b strings.Builder
	writeFrontMatter(&b, map[string]any{
		"title": g.cfg.Site.Title,
		"uid":   pageUID("index"),
	})

	b.WriteString("# " + g.cfg.Site.Title + "\n\n")
	if g.cfg.Site.Description != "" {
		b.WriteString(g.cfg.Site.Description + "\n\n")
	}

	if len(paths) == 0 {
		b.WriteString("No documented declarations were found.\n")
	} else {
		b.WriteString("| File | Dialect | Items |\n|------|---------|-------|\n")
		for _, path := range paths {
			doc := result.Docs[path]
			fmt.Fprintf(&b, "| [%s](%s) | %s | %d |\n", pageTitle(path), pages[path], doc.Dialect, doc.Len())
		}
	}

	if n := result.Diagnostics(); n > 0 {
		fmt.Fprintf(&b, "\n> %d malformed documentation block(s) were skipped; run with verbose logging for details.\n", n)
	}

	target := filepath.Join(g.outputDir, "index.md")
	if err := os.WriteFile(target, []byte(b.String()), 0o644); err != nil {
		return apperrors.RenderError(target, err)
	}
	return nil
}

// writeAggregate dumps the canonical records for downstream tooling.
func (g *Generator) writeAggregate(paths []string, result *engine.Result) error {
	aggregate := make([]*model.Documentation, 0, len(paths))
	for _, path := range paths {
		aggregate = append(aggregate, result.Docs[path])
	}

	data, err := yaml.Marshal(aggregate)
	if err != nil {
		return apperrors.RenderError("documentation.yaml", err)
	}
	target := filepath.Join(g.outputDir, "documentation.yaml")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return apperrors.RenderError(target, err)
	}
	return nil
}

// writeFrontMatter emits a YAML front matter header with stable key order.
func writeFrontMatter(b *strings.Builder, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b.WriteString("---\n")
	for _, k := range keys {
		fmt.Fprintf(b, "%s: %v\n", k, fields[k])
	}
	b.WriteString("---\n\n")
}

// uidNamespace scopes the deterministic page UIDs. Deriving the uid from the
// source path keeps a page's identity stable across regeneration runs.
var uidNamespace = uuid.MustParse("a6c2f56e-8f1d-4c43-9d24-7b52e9c0d1aa")

func pageUID(name string) string {
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

// pageFileNames assigns each source path a unique page name, in path order.
// The slugged base name is preferred; a colliding base is qualified with its
// parent directory, then with a numeric suffix.
func pageFileNames(paths []string) map[string]string {
	names := make(map[string]string, len(paths))
	taken := make(map[string]bool, len(paths))

	for _, path := range paths {
		base := filepath.Base(path)
		slug := Slug(strings.TrimSuffix(base, filepath.Ext(base)))

		candidate := slug
		if taken[candidate] {
			if parent := filepath.Base(filepath.Dir(path)); parent != "." && parent != string(filepath.Separator) {
				candidate = Slug(parent) + "-" + slug
			}
		}
		for n := 2; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d", slug, n)
		}

		taken[candidate] = true
		names[path] = candidate + ".md"
	}
	return names
}

// pageTitle is the human-readable page heading for a source file.
func pageTitle(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

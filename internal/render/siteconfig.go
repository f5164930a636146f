package render

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/thedoc/internal/errors"
)

// writeSiteConfig emits mkdocs.yml next to the rendered pages so the output
// directory is directly buildable as a site.
func (g *Generator) writeSiteConfig(nav []map[string]string) error {
	root := map[string]any{
		"site_name": g.cfg.Site.Title,
		"docs_dir":  ".",
		"theme":     map[string]any{"name": "material"},
		"markdown_extensions": []string{
			"admonition",
			"tables",
			"fenced_code",
		},
		"nav": nav,
	}
	if g.cfg.Site.Description != "" {
		root["site_description"] = g.cfg.Site.Description
	}
	if g.cfg.Site.BaseURL != "" {
		root["site_url"] = g.cfg.Site.BaseURL
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return apperrors.RenderError("mkdocs.yml", err)
	}
	target := filepath.Join(g.outputDir, "mkdocs.yml")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return apperrors.RenderError(target, err)
	}
	return nil
}

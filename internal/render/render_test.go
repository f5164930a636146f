package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/thedoc/internal/config"
	"git.home.luguber.info/inful/thedoc/internal/engine"
	"git.home.luguber.info/inful/thedoc/internal/model"
)

func testConfig() *config.Config {
	cfg := config.Default("demo")
	cfg.Site.Title = "Demo Docs"
	cfg.Site.Description = "API reference for demo"
	return cfg
}

func sampleResult() *engine.Result {
	doc := model.NewDocumentation("src/Calculator.kt", "kdoc")
	doc.Add(model.DocItem{
		Name:        "Calculator",
		Kind:        model.KindClass,
		Description: "Performs arithmetic.",
		Signature:   "class Calculator",
	})
	doc.Add(model.DocItem{
		Name:        "add",
		Kind:        model.KindFunction,
		Description: "Adds two numbers.",
		Parameters: []model.Param{
			{Name: "a", Description: "first operand"},
			{Name: "b", Description: "second operand"},
		},
		Returns: "the sum",
		Throws:  []model.Throw{{Type: "OverflowException", Description: "on overflow"}},
	})
	return &engine.Result{
		Docs:   map[string]*model.Documentation{"src/Calculator.kt": doc},
		Failed: map[string]error{},
	}
}

func TestGenerateWritesPageIndexAndSiteConfig(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(testConfig(), out)
	require.NoError(t, g.Generate(sampleResult()))

	page, err := os.ReadFile(filepath.Join(out, "calculator.md"))
	require.NoError(t, err)
	content := string(page)
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "source_file: src/Calculator.kt")
	assert.Contains(t, content, "dialect: kdoc")
	assert.Contains(t, content, "uid: ")
	assert.Contains(t, content, "# Calculator")
	assert.Contains(t, content, "## Classes")
	assert.Contains(t, content, "## Functions")
	assert.Contains(t, content, "- `a`: first operand")
	assert.Contains(t, content, "**Returns:** the sum")
	assert.Contains(t, content, "- `OverflowException`: on overflow")

	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# Demo Docs")
	assert.Contains(t, string(index), "[Calculator](calculator.md)")
	assert.Contains(t, string(index), "| kdoc | 2 |")

	raw, err := os.ReadFile(filepath.Join(out, "mkdocs.yml"))
	require.NoError(t, err)
	var site map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &site))
	assert.Equal(t, "Demo Docs", site["site_name"])
	nav, ok := site["nav"].([]any)
	require.True(t, ok)
	assert.Len(t, nav, 2)
}

func TestGenerateAggregateRoundTrips(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(testConfig(), out)
	require.NoError(t, g.Generate(sampleResult()))

	raw, err := os.ReadFile(filepath.Join(out, "documentation.yaml"))
	require.NoError(t, err)

	var docs []model.Documentation
	require.NoError(t, yaml.Unmarshal(raw, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "src/Calculator.kt", docs[0].SourceFile)
	assert.Equal(t, 2, docs[0].Len())
}

func TestGenerateDisambiguatesDuplicateBaseNames(t *testing.T) {
	docA := model.NewDocumentation("a/Utils.swift", "swiftdoc")
	docA.Add(model.DocItem{Name: "clampA", Kind: model.KindFunction, Description: "from a"})
	docB := model.NewDocumentation("b/Utils.swift", "swiftdoc")
	docB.Add(model.DocItem{Name: "clampB", Kind: model.KindFunction, Description: "from b"})

	out := t.TempDir()
	g := NewGenerator(testConfig(), out)
	require.NoError(t, g.Generate(&engine.Result{
		Docs: map[string]*model.Documentation{
			"a/Utils.swift": docA,
			"b/Utils.swift": docB,
		},
		Failed: map[string]error{},
	}))

	first, err := os.ReadFile(filepath.Join(out, "utils.md"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "from a")

	second, err := os.ReadFile(filepath.Join(out, "b-utils.md"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "from b")

	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "(utils.md)")
	assert.Contains(t, string(index), "(b-utils.md)")
}

func TestPageFileNamesNumericFallback(t *testing.T) {
	names := pageFileNames([]string{"x/Utils.swift", "y/Utils.swift", "y/utils.kt"})
	assert.Equal(t, "utils.md", names["x/Utils.swift"])
	assert.Equal(t, "y-utils.md", names["y/Utils.swift"])
	assert.Equal(t, "utils-2.md", names["y/utils.kt"])
}

func TestGenerateKeepsUIDsAcrossRuns(t *testing.T) {
	uidLine := func(t *testing.T, dir, page string) string {
		t.Helper()
		raw, err := os.ReadFile(filepath.Join(dir, page))
		require.NoError(t, err)
		for _, line := range strings.Split(string(raw), "\n") {
			if strings.HasPrefix(line, "uid: ") {
				return line
			}
		}
		t.Fatalf("no uid in %s", page)
		return ""
	}

	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, NewGenerator(testConfig(), first).Generate(sampleResult()))
	require.NoError(t, NewGenerator(testConfig(), second).Generate(sampleResult()))

	assert.Equal(t, uidLine(t, first, "calculator.md"), uidLine(t, second, "calculator.md"))
	assert.Equal(t, uidLine(t, first, "index.md"), uidLine(t, second, "index.md"))
	assert.NotEqual(t, uidLine(t, first, "calculator.md"), uidLine(t, first, "index.md"))
}

func TestWriteItemThrowsWithoutType(t *testing.T) {
	var b strings.Builder
	writeItem(&b, model.DocItem{
		Name:   "reset",
		Kind:   model.KindFunction,
		Throws: []model.Throw{{Description: "an error if the store is sealed"}},
	})
	assert.Contains(t, b.String(), "- an error if the store is sealed\n")
	assert.NotContains(t, b.String(), "``")
}

func TestGenerateCleanRemovesStalePages(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "stale.md")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	cfg := testConfig()
	cfg.Output.Clean = true
	g := NewGenerator(cfg, out)
	require.NoError(t, g.Generate(sampleResult()))

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateEmptyResult(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(testConfig(), out)
	require.NoError(t, g.Generate(&engine.Result{
		Docs:   map[string]*model.Documentation{},
		Failed: map[string]error{},
	}))

	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "No documented declarations were found.")
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Calculator", "calculator"},
		{"My File Name", "my-file-name"},
		{"Café", "cafe"},
		{"vec2_ops", "vec2-ops"},
		{"--weird--", "weird"},
		{"", "page"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.expected {
			t.Errorf("Slug(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

const kotlinSource = `/**
 * Computes sum.
 * @param a first
 * @param b second
 * @return total
 */
fun add(a: Int, b: Int): Int = a + b

/**
 * Computes difference.
 */
fun sub(a: Int, b: Int): Int = a - b

/** A widget. */
class Widget
`

func TestOrderPreservationPerBucket(t *testing.T) {
	e := New()
	d, ok := e.Registry().ByName("kdoc")
	require.True(t, ok)

	doc, err := e.ParseContent(d, "Math.kt", kotlinSource)
	require.NoError(t, err)

	funcs := doc.Items(model.KindFunction)
	require.Len(t, funcs, 2)
	assert.Equal(t, "add", funcs[0].Name)
	assert.Equal(t, "sub", funcs[1].Name)
	require.Len(t, doc.Items(model.KindClass), 1)
}

func TestIdempotence(t *testing.T) {
	e := New()
	d, ok := e.Registry().ByName("kdoc")
	require.True(t, ok)

	first, err := e.ParseContent(d, "Math.kt", kotlinSource)
	require.NoError(t, err)
	second, err := e.ParseContent(d, "Math.kt", kotlinSource)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two passes over identical content disagree:\n%+v\nvs\n%+v", first, second)
	}
}

func TestGracefulDegradationOneBadBlock(t *testing.T) {
	var b strings.Builder
	b.WriteString("/// <method name=\"Good\"><summary>ok</summary></method>\n")
	b.WriteString("int Good() {}\n\n")
	b.WriteString("/// <method name=\"Broken\"><summary>no close\n")
	b.WriteString("int Broken() {}\n\n")
	b.WriteString("/// <method name=\"Fine\"><summary>ok too</summary></method>\n")
	b.WriteString("int Fine() {}\n")

	e := New()
	d, ok := e.Registry().ByName("xmldoc")
	require.True(t, ok)

	doc, err := e.ParseContent(d, "Svc.cs", b.String())
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Len())
	assert.Len(t, doc.Diagnostics, 1)
}

func TestDialectIsolation(t *testing.T) {
	// Swift content run through the Kotlin parser must not produce Kotlin
	// classifications from Swift-only forms, and vice versa.
	swiftSource := "/// A direction.\ncase north\n"

	e := New()
	kd, ok := e.Registry().ByName("kdoc")
	require.True(t, ok)

	doc, err := e.ParseContent(kd, "D.swift", swiftSource)
	require.NoError(t, err)
	// kdoc only reads /** */ blocks; the /// run is invisible to it.
	assert.True(t, doc.IsEmpty())
}

func TestRunAcrossFiles(t *testing.T) {
	dir := t.TempDir()

	kt := filepath.Join(dir, "Math.kt")
	require.NoError(t, os.WriteFile(kt, []byte(kotlinSource), 0o644))

	swift := filepath.Join(dir, "Direction.swift")
	swiftSource := "/// Points north.\ncase north\n"
	require.NoError(t, os.WriteFile(swift, []byte(swiftSource), 0o644))

	missing := filepath.Join(dir, "gone.cs")

	e := New()
	result, err := e.Run(context.Background(), []string{kt, swift, missing}, 4)
	require.NoError(t, err)

	assert.Len(t, result.Docs, 2)
	assert.Contains(t, result.Failed, missing)
	assert.Equal(t, 4, result.Items()) // add, sub, Widget, north
}

func TestRunWithUnknownExtensionIsSkipped(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("just text"), 0o644))

	result, err := New().Run(context.Background(), []string{txt}, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Docs)
	assert.Empty(t, result.Failed)
}

func TestRegistryExtensionMapping(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		ext  string
		name string
	}{
		{".cs", "xmldoc"},
		{".kt", "kdoc"},
		{".kts", "kdoc"},
		{".swift", "swiftdoc"},
	}
	for _, test := range tests {
		d, ok := reg.ByExtension(test.ext)
		if !ok || d.Name() != test.name {
			t.Errorf("ByExtension(%q) = %v, want %s", test.ext, d, test.name)
		}
	}
	if _, ok := reg.ByExtension(".py"); ok {
		t.Error("unexpected dialect for .py")
	}
}

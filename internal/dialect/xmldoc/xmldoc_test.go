package xmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

func docComment(lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("/// " + l + "\n")
	}
	return b.String()
}

func TestParseMethodBlock(t *testing.T) {
	content := docComment(
		`<method name="Foo">`,
		`<summary>Does X</summary>`,
		`<param name="a">first</param>`,
		`<returns>a value</returns>`,
		`</method>`,
	)

	doc, err := New().ParseFile("Sample.cs", content)
	require.NoError(t, err)
	require.Empty(t, doc.Diagnostics)

	items := doc.Items(model.KindFunction)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Foo", item.Name)
	assert.Equal(t, model.KindFunction, item.Kind)
	assert.Equal(t, "Does X", item.Description)
	assert.Equal(t, []model.Param{{Name: "a", Description: "first"}}, item.Parameters)
	assert.Equal(t, "a value", item.Returns)
	assert.Equal(t, "Sample.cs", item.SourceFile)
	assert.Equal(t, 1, item.LineNumber)
}

func TestParseClassWithTypeParamsAndSeeAlso(t *testing.T) {
	content := docComment(
		`<class name="Cache">`,
		`<summary>Caches things.</summary>`,
		`<typeparam name="TKey">the key type</typeparam>`,
		`<seealso cref="Store">backing store</seealso>`,
		`<remarks>Not thread safe.</remarks>`,
		`</class>`,
	)

	doc, err := New().ParseFile("Cache.cs", content)
	require.NoError(t, err)

	items := doc.Items(model.KindClass)
	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, "Cache", item.Name)
	assert.Equal(t, []model.Param{{Name: "TKey", Description: "the key type"}}, item.TypeParams)
	assert.Equal(t, []model.Reference{{Display: "backing store", Target: "Store"}}, item.SeeAlso)
	assert.Equal(t, "Not thread safe.", item.Remarks)
}

func TestEnumValuesBecomeCases(t *testing.T) {
	content := docComment(
		`<enum name="Color">`,
		`<summary>Known colors.</summary>`,
		`<value name="Red">the red one</value>`,
		`<value name="Blue">the blue one</value>`,
		`</enum>`,
	)

	doc, err := New().ParseFile("Color.cs", content)
	require.NoError(t, err)

	items := doc.Items(model.KindEnum)
	require.Len(t, items, 1)
	assert.Equal(t, []model.EnumCase{
		{Name: "Red", Description: "the red one"},
		{Name: "Blue", Description: "the blue one"},
	}, items[0].Cases)
}

func TestMethodExceptions(t *testing.T) {
	content := docComment(
		`<method name="Open">`,
		`<summary>Opens the file.</summary>`,
		`<exception cref="FileNotFoundException">when missing</exception>`,
		`<exception cref="IOException">on read failure</exception>`,
		`</method>`,
	)

	doc, err := New().ParseFile("File.cs", content)
	require.NoError(t, err)

	items := doc.Items(model.KindFunction)
	require.Len(t, items, 1)
	assert.Equal(t, []model.Throw{
		{Type: "FileNotFoundException", Description: "when missing"},
		{Type: "IOException", Description: "on read failure"},
	}, items[0].Throws)
}

func TestInlineMarkupTranslation(t *testing.T) {
	tests := []struct {
		name     string
		summary  string
		expected string
	}{
		{"code span", `<c>value</c>`, "`value`"},
		{"paramref", `<paramref name="count"/>`, "`count`"},
		{"typeparamref", `<typeparamref name="T"/>`, "`T`"},
		{"see cref without text", `<see cref="Widget"/>`, "[Widget](Widget)"},
		{"see cref with text", `<see cref="Widget">the widget</see>`, "[the widget](Widget)"},
		{"see href", `<see href="https://example.com">docs</see>`, "[docs](https://example.com)"},
		{"inheritdoc", `<inheritdoc/>`, "[Inherited documentation]"},
		{"include", `<include file="shared.xml"/>`, "[Included from: shared.xml]"},
		{"para", `<para>A paragraph.</para>`, "A paragraph."},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			content := docComment(
				`<method name="M">`,
				`<summary>`+test.summary+`</summary>`,
				`</method>`,
			)
			doc, err := New().ParseFile("M.cs", content)
			require.NoError(t, err)
			items := doc.Items(model.KindFunction)
			require.Len(t, items, 1)
			assert.Equal(t, test.expected, items[0].Description)
		})
	}
}

func TestListTranslation(t *testing.T) {
	content := docComment(
		`<method name="M">`,
		`<summary><list type="number">`,
		`<item><term>first</term><description>one</description></item>`,
		`<item><term>second</term><description>two</description></item>`,
		`</list></summary>`,
		`</method>`,
	)

	doc, err := New().ParseFile("M.cs", content)
	require.NoError(t, err)
	items := doc.Items(model.KindFunction)
	require.Len(t, items, 1)
	assert.Equal(t, "1. first: one\n2. second: two", items[0].Description)
}

func TestBulletListIsDefault(t *testing.T) {
	content := docComment(
		`<method name="M">`,
		`<summary><list>`,
		`<item>alpha</item>`,
		`<item>beta</item>`,
		`</list></summary>`,
		`</method>`,
	)

	doc, err := New().ParseFile("M.cs", content)
	require.NoError(t, err)
	items := doc.Items(model.KindFunction)
	require.Len(t, items, 1)
	assert.Equal(t, "* alpha\n* beta", items[0].Description)
}

func TestMalformedBlockIsSkippedWithDiagnostic(t *testing.T) {
	content := docComment(
		`<method name="Good">`,
		`<summary>fine</summary>`,
		`</method>`,
	) + "\n" + docComment(
		`<method name="Bad">`,
		`<summary>unterminated`,
	) + "\n" + docComment(
		`<method name="AlsoGood">`,
		`<summary>fine too</summary>`,
		`</method>`,
	)

	doc, err := New().ParseFile("Mixed.cs", content)
	require.NoError(t, err)

	items := doc.Items(model.KindFunction)
	require.Len(t, items, 2)
	assert.Equal(t, "Good", items[0].Name)
	assert.Equal(t, "AlsoGood", items[1].Name)

	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "Mixed.cs", doc.Diagnostics[0].File)
	assert.Contains(t, doc.Diagnostics[0].Excerpt, "Bad")
}

func TestMissingNameAttributeIsDropped(t *testing.T) {
	content := docComment(
		`<class>`,
		`<summary>anonymous</summary>`,
		`</class>`,
	)

	doc, err := New().ParseFile("A.cs", content)
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())
	require.Len(t, doc.Diagnostics, 1)
	assert.Contains(t, doc.Diagnostics[0].Message, "name attribute")
}

func TestUnknownRootElement(t *testing.T) {
	content := docComment(`<module name="X"><summary>hm</summary></module>`)

	doc, err := New().ParseFile("B.cs", content)
	require.NoError(t, err)
	assert.True(t, doc.IsEmpty())
	require.Len(t, doc.Diagnostics, 1)
	assert.Contains(t, doc.Diagnostics[0].Message, "<module>")
}

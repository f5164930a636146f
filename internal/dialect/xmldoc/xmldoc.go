// Package xmldoc parses .NET-style XML documentation comments: contiguous ///
// runs whose joined content forms an XML fragment rooted at a declaration-kind
// element (class, method, property, enum, interface, type).
//
// The root element's name attribute identifies the declaration, so no anchor
// classification is needed. A fragment that fails to parse costs exactly one
// diagnostic and never aborts the rest of the file.
package xmldoc

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/model"
	"git.home.luguber.info/inful/thedoc/internal/scanner"
)

// rootKinds maps recognized fragment root elements to declaration kinds.
var rootKinds = map[string]model.Kind{
	"class":     model.KindClass,
	"method":    model.KindFunction,
	"property":  model.KindProperty,
	"enum":      model.KindEnum,
	"interface": model.KindInterface,
	"type":      model.KindType,
}

// Parser implements dialect.Dialect for XML doc comments.
type Parser struct{}

// New returns the xmldoc parser.
func New() *Parser { return &Parser{} }

func (p *Parser) Name() string { return "xmldoc" }

func (p *Parser) Extensions() []string { return []string{".cs"} }

// ParseFile extracts documentation from one .NET source file.
func (p *Parser) ParseFile(path, content string) (*model.Documentation, error) {
	doc := model.NewDocumentation(path, p.Name())

	it := scanner.New(content, scanner.LineComments)
	for {
		block, ok := it.Next()
		if !ok {
			break
		}
		fragment := strings.TrimSpace(block.Text)
		if fragment == "" {
			continue
		}

		root, err := parseFragment(fragment)
		if err != nil {
			doc.AddDiagnostic(model.Diagnostic{
				File:    path,
				Line:    block.StartLine,
				Message: fmt.Sprintf("malformed XML documentation block: %v", err),
				Excerpt: excerpt(fragment),
			})
			continue
		}

		kind, ok := rootKinds[root.name]
		if !ok {
			doc.AddDiagnostic(model.Diagnostic{
				File:    path,
				Line:    block.StartLine,
				Message: fmt.Sprintf("unknown documentation root element <%s>", root.name),
				Excerpt: excerpt(fragment),
			})
			continue
		}

		name := strings.TrimSpace(root.attr["name"])
		if name == "" {
			doc.AddDiagnostic(model.Diagnostic{
				File:    path,
				Line:    block.StartLine,
				Message: fmt.Sprintf("<%s> element is missing its name attribute", root.name),
				Excerpt: excerpt(fragment),
			})
			continue
		}

		item := buildItem(kind, name, root)
		item.SourceFile = path
		item.LineNumber = block.StartLine
		doc.Add(item)
	}

	return doc, nil
}

// buildItem maps the fragment's child elements onto the canonical record.
func buildItem(kind model.Kind, name string, root *node) model.DocItem {
	item := model.DocItem{
		Name:        name,
		Kind:        kind,
		Description: elementText(root, "summary"),
		Remarks:     elementText(root, "remarks"),
	}

	for _, ex := range root.find("example") {
		if text := renderContent(ex); text != "" {
			item.Examples = append(item.Examples, text)
		}
	}
	for _, see := range root.find("seealso") {
		item.SeeAlso = append(item.SeeAlso, referenceFor(see))
	}
	for _, tp := range root.find("typeparam") {
		item.TypeParams = append(item.TypeParams, model.Param{
			Name:        tp.attr["name"],
			Description: renderContent(tp),
		})
	}

	switch kind {
	case model.KindFunction:
		for _, par := range root.find("param") {
			item.Parameters = append(item.Parameters, model.Param{
				Name:        par.attr["name"],
				Description: renderContent(par),
			})
		}
		item.Returns = elementText(root, "returns")
		for _, exc := range root.find("exception") {
			ident := exc.attr["cref"]
			if ident == "" {
				ident = exc.attr["name"]
			}
			item.Throws = append(item.Throws, model.Throw{
				Type:        ident,
				Description: renderContent(exc),
			})
		}
	case model.KindProperty:
		// The <value> element describes what the property holds; it lands in
		// the returns slot of the canonical record.
		item.Returns = elementText(root, "value")
	case model.KindEnum:
		for _, val := range root.find("value") {
			item.Cases = append(item.Cases, model.EnumCase{
				Name:        val.attr["name"],
				Description: renderContent(val),
			})
		}
	}

	return item
}

// elementText renders the first child element with the given tag, or "".
func elementText(root *node, tag string) string {
	children := root.find(tag)
	if len(children) == 0 {
		return ""
	}
	return renderContent(children[0])
}

// renderContent flattens one element's content using the inline translation
// table. Elements with child markup render each child in order; a childless
// element contributes its own character data.
func renderContent(elem *node) string {
	if len(elem.children) == 0 {
		return strings.TrimSpace(elem.text)
	}
	var parts []string
	for _, child := range elem.children {
		if part := renderInline(child); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// renderInline translates one inline markup element to its text form.
func renderInline(child *node) string {
	switch child.name {
	case "para":
		return strings.TrimSpace(child.text)
	case "c":
		if child.text == "" {
			return ""
		}
		return "`" + child.text + "`"
	case "code":
		if child.text == "" {
			return ""
		}
		return "```\n" + child.text + "\n```"
	case "list":
		return renderList(child)
	case "paramref", "typeparamref":
		if name := child.attr["name"]; name != "" {
			return "`" + name + "`"
		}
		return ""
	case "see":
		ref := referenceFor(child)
		if ref.Target != "" {
			return fmt.Sprintf("[%s](%s)", ref.Display, ref.Target)
		}
		return ref.Display
	case "inheritdoc":
		return "[Inherited documentation]"
	case "include":
		return fmt.Sprintf("[Included from: %s]", child.attr["file"])
	default:
		return strings.TrimSpace(child.text)
	}
}

// renderList renders a <list> element: numbered when type="number", bulleted
// otherwise; items carry either term/description pairs or bare text.
func renderList(list *node) string {
	var items []string
	for _, item := range list.find("item") {
		term := elementText(item, "term")
		description := elementText(item, "description")
		if term != "" && description != "" {
			items = append(items, term+": "+description)
		} else {
			items = append(items, strings.TrimSpace(item.text))
		}
	}

	var lines []string
	if list.attr["type"] == "number" {
		for i, it := range items {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, it))
		}
	} else {
		for _, it := range items {
			lines = append(lines, "* "+it)
		}
	}
	return strings.Join(lines, "\n")
}

// referenceFor builds a cross-reference from a <see>/<seealso> element.
// Display falls back to the target when the element has no inner text.
func referenceFor(elem *node) model.Reference {
	text := strings.TrimSpace(elem.text)
	if cref := elem.attr["cref"]; cref != "" {
		if text == "" {
			text = cref
		}
		return model.Reference{Display: text, Target: cref}
	}
	if href := elem.attr["href"]; href != "" {
		if text == "" {
			text = href
		}
		return model.Reference{Display: text, Target: href}
	}
	return model.Reference{Display: text}
}

func excerpt(s string) string {
	const max = 160
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Package swiftdoc parses Swift documentation comments. Both /// runs and
// /** ... */ blocks are recognized in one pass. The structured portion uses
// markdown-like dash tags (- Parameters:, - Returns:, - Throws:, ...) and
// optional ##-headed subsections (Example, Parameters, Cases).
//
// This dialect does not track source line numbers; DocItems it emits carry
// only the source file path. That is a documented degradation, not a bug.
package swiftdoc

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/classify"
	"git.home.luguber.info/inful/thedoc/internal/model"
	"git.home.luguber.info/inful/thedoc/internal/scanner"
)

// tagLine matches the recognized dash-tag labels, checked case-sensitively the
// way Xcode renders them. Parameters and Returns accept the singular spelling.
var tagLine = regexp.MustCompile(`^-\s*(Parameters?|Returns?|Throws|Note|Warning|Important|SeeAlso|Precondition|Postcondition|Case)\s*:\s*(.*)$`)

var (
	paramLine   = regexp.MustCompile("^-\\s*(\\w+)\\s*:\\s*(.*)$")
	caseLine    = regexp.MustCompile("^-\\s*`(\\w+)`\\s*:\\s*(.+)$")
	caseTagBody = regexp.MustCompile(`^(\w+)\s*:\s*(.+)$`)
	throwBody   = regexp.MustCompile(`^([A-Z]\w*(?:\.\w+)*)\s*:\s*(.+)$`)
	fencedSwift = regexp.MustCompile("(?s)```swift\\n(.*?)```")
)

// Parser implements dialect.Dialect for Swift doc comments.
type Parser struct {
	classifier *classify.Classifier
}

// New returns the swiftdoc parser.
func New() *Parser { return &Parser{classifier: classify.Swift()} }

func (p *Parser) Name() string { return "swiftdoc" }

func (p *Parser) Extensions() []string { return []string{".swift"} }

// ParseFile extracts documentation from one Swift source file.
func (p *Parser) ParseFile(path, content string) (*model.Documentation, error) {
	doc := model.NewDocumentation(path, p.Name())

	it := scanner.New(content, scanner.Mixed)
	for {
		block, ok := it.Next()
		if !ok {
			break
		}
		if block.Anchor == "" {
			continue
		}

		kind, name, ok := p.classifier.Classify(block.Anchor)
		if !ok {
			continue
		}

		parsed := parseBlock(clean(block))

		if kind == model.KindEnumCase {
			p.addCaseItems(doc, path, block, name, parsed)
			continue
		}

		item := model.DocItem{
			Name:        name,
			Kind:        kind,
			Description: parsed.description,
			Signature:   strings.TrimSpace(block.Anchor),
			Parameters:  parsed.params,
			Returns:     parsed.returns,
			Throws:      parsed.throws,
			Remarks:     parsed.remarks,
			Examples:    parsed.examples,
			SeeAlso:     parsed.seeAlso,
			Cases:       parsed.cases,
			SourceFile:  path,
		}
		doc.Add(item)
	}

	return doc, nil
}

// addCaseItems emits enum-case records. A Cases subsection expands into one
// item per listed case; otherwise the anchored case itself is the item, with
// the first non-empty line of the block as its description.
func (p *Parser) addCaseItems(doc *model.Documentation, path string, block scanner.Block, name string, parsed parsedBlock) {
	if len(parsed.cases) > 0 {
		for _, c := range parsed.cases {
			doc.Add(model.DocItem{
				Name:        c.Name,
				Kind:        model.KindEnumCase,
				Description: c.Description,
				SourceFile:  path,
			})
		}
		return
	}

	doc.Add(model.DocItem{
		Name:        name,
		Kind:        model.KindEnumCase,
		Description: firstLine(parsed.description),
		Signature:   strings.TrimSpace(block.Anchor),
		SourceFile:  path,
	})
}

// parsedBlock is the dialect-neutral intermediate for one Swift block.
type parsedBlock struct {
	description string
	params      []model.Param
	returns     string
	throws      []model.Throw
	remarks     string
	examples    []string
	seeAlso     []model.Reference
	cases       []model.EnumCase
}

// parseBlock splits the cleaned block into the main section and ## subsections,
// then partitions the main section into description and dash-tag region.
func parseBlock(text string) parsedBlock {
	var out parsedBlock

	main, sections := splitSections(text)
	description, tags := splitTags(main)
	out.description = description

	var remarks []string
	for _, tag := range tags {
		switch tag.name {
		case "Parameters", "Parameter":
			out.params = append(out.params, parseParamList(tag.body)...)
		case "Returns", "Return":
			out.returns = tag.body
		case "Throws":
			out.throws = append(out.throws, parseThrow(tag.body))
		case "SeeAlso":
			out.seeAlso = append(out.seeAlso, model.Reference{Display: tag.body, Target: tag.body})
		case "Case":
			if m := caseTagBody.FindStringSubmatch(tag.body); m != nil {
				out.cases = append(out.cases, model.EnumCase{Name: m[1], Description: strings.TrimSpace(m[2])})
			}
		case "Note", "Warning", "Important", "Precondition", "Postcondition":
			remarks = append(remarks, tag.name+": "+tag.body)
		}
	}
	out.remarks = strings.Join(remarks, "\n")

	for _, section := range sections {
		switch strings.ToLower(section.title) {
		case "example":
			for _, m := range fencedSwift.FindAllStringSubmatch(section.body, -1) {
				out.examples = append(out.examples, strings.TrimSpace(m[1]))
			}
		case "parameters":
			out.params = append(out.params, parseParamList(section.body)...)
		case "cases":
			for _, line := range strings.Split(section.body, "\n") {
				if m := caseLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
					out.cases = append(out.cases, model.EnumCase{Name: m[1], Description: strings.TrimSpace(m[2])})
				}
			}
		}
	}

	return out
}

type section struct {
	title string
	body  string
}

// splitSections separates the leading main section from ##-headed subsections.
func splitSections(text string) (string, []section) {
	lines := strings.Split(text, "\n")
	var main []string
	var sections []section
	current := -1

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if title, ok := strings.CutPrefix(trimmed, "## "); ok {
			sections = append(sections, section{title: strings.TrimSpace(title)})
			current = len(sections) - 1
			continue
		}
		if current >= 0 {
			sections[current].body += line + "\n"
		} else {
			main = append(main, line)
		}
	}
	return strings.Join(main, "\n"), sections
}

type tag struct {
	name string
	body string
}

// splitTags partitions the main section at the first recognized dash-tag line.
// A tag's body runs to the next recognized tag line; indented item lines (the
// parameter list under - Parameters:) stay inside the current tag's body.
func splitTags(main string) (string, []tag) {
	var desc []string
	var tags []tag

	for _, line := range strings.Split(main, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := tagLine.FindStringSubmatch(trimmed); m != nil {
			tags = append(tags, tag{name: normalizeTagName(m[1]), body: strings.TrimSpace(m[2])})
			continue
		}
		if len(tags) == 0 {
			desc = append(desc, line)
			continue
		}
		if trimmed == "" {
			continue
		}
		last := len(tags) - 1
		if tags[last].body == "" {
			tags[last].body = trimmed
		} else {
			tags[last].body += "\n" + trimmed
		}
	}

	return strings.TrimSpace(strings.Join(desc, "\n")), tags
}

func normalizeTagName(name string) string {
	switch name {
	case "Parameter":
		return "Parameters"
	case "Return":
		return "Returns"
	}
	return name
}

// parseThrow splits a leading error-type prefix ("DecodeError: when ...") off
// a Throws body. Bodies without such a prefix keep an empty Type and carry the
// whole text as the condition.
func parseThrow(body string) model.Throw {
	if m := throwBody.FindStringSubmatch(body); m != nil {
		return model.Throw{Type: m[1], Description: strings.TrimSpace(m[2])}
	}
	return model.Throw{Description: body}
}

// parseParamList extracts "- name: text" entries; continuation lines without a
// leading dash extend the previous entry's description.
func parseParamList(body string) []model.Param {
	var params []model.Param
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := paramLine.FindStringSubmatch(trimmed); m != nil {
			params = append(params, model.Param{Name: m[1], Description: strings.TrimSpace(m[2])})
			continue
		}
		if len(params) > 0 {
			last := len(params) - 1
			if params[last].Description == "" {
				params[last].Description = trimmed
			} else {
				params[last].Description += " " + trimmed
			}
		}
	}
	return params
}

// clean strips comment markers from a block. Line-form blocks arrive with ///
// already removed by the scanner; block-form spans still carry /** */ and the
// decorative leading * on interior lines.
func clean(block scanner.Block) string {
	if block.Form == scanner.FormLine {
		return strings.TrimSpace(block.Text)
	}

	raw := strings.TrimSpace(block.Text)
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimPrefix(line, " ")
		cleaned = append(cleaned, line)
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

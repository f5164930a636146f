// Package kdoc parses Kotlin KDoc comments: /** ... */ blocks whose trailing
// portion holds @tag lines (@param, @return, @throws, @property, @see,
// @sample). The declaration on the line after the block is classified with the
// Kotlin anchor patterns.
package kdoc

import (
	"strings"

	"git.home.luguber.info/inful/thedoc/internal/classify"
	"git.home.luguber.info/inful/thedoc/internal/model"
	"git.home.luguber.info/inful/thedoc/internal/scanner"
)

// Parser implements dialect.Dialect for KDoc.
type Parser struct {
	classifier *classify.Classifier
}

// New returns the kdoc parser.
func New() *Parser { return &Parser{classifier: classify.Kotlin()} }

func (p *Parser) Name() string { return "kdoc" }

func (p *Parser) Extensions() []string { return []string{".kt", ".kts"} }

// ParseFile extracts documentation from one Kotlin source file. Blocks whose
// anchor matches no declaration pattern are dropped without an error.
func (p *Parser) ParseFile(path, content string) (*model.Documentation, error) {
	doc := model.NewDocumentation(path, p.Name())

	it := scanner.New(content, scanner.BlockComments)
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

		parsed := parseBlock(clean(block.Text))

		item := model.DocItem{
			Name:        name,
			Kind:        kind,
			Description: parsed.description,
			Signature:   strings.TrimSpace(block.Anchor),
			Parameters:  parsed.params,
			Returns:     parsed.returns,
			Throws:      parsed.throws,
			Examples:    parsed.samples,
			SeeAlso:     parsed.seeAlso,
			SourceFile:  path,
			LineNumber:  block.StartLine,
		}
		doc.Add(item)

		// @property tags document class properties declared in the primary
		// constructor; surface each as its own property record.
		for _, prop := range parsed.properties {
			doc.Add(model.DocItem{
				Name:        prop.Name,
				Kind:        model.KindProperty,
				Description: prop.Description,
				SourceFile:  path,
				LineNumber:  block.StartLine,
			})
		}
	}

	return doc, nil
}

// parsedBlock is the dialect-neutral intermediate for one KDoc block.
type parsedBlock struct {
	description string
	params      []model.Param
	returns     string
	throws      []model.Throw
	properties  []model.Param
	seeAlso     []model.Reference
	samples     []string
}

// parseBlock partitions the cleaned block into a leading description and
// trailing @tag region. Each tag's text runs until the next @tag line or the
// end of the block.
func parseBlock(text string) parsedBlock {
	var out parsedBlock

	lines := strings.Split(text, "\n")
	var desc []string
	var tags [][]string // each: tag line plus its continuation lines

	inTags := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			inTags = true
			tags = append(tags, []string{strings.TrimSpace(line)})
			continue
		}
		if inTags {
			if len(tags) > 0 && strings.TrimSpace(line) != "" {
				last := len(tags) - 1
				tags[last] = append(tags[last], strings.TrimSpace(line))
			}
			continue
		}
		desc = append(desc, line)
	}
	out.description = strings.TrimSpace(strings.Join(desc, "\n"))

	for _, tag := range tags {
		text := strings.Join(tag, " ")
		switch {
		case strings.HasPrefix(text, "@param "):
			name, rest := splitNameText(strings.TrimPrefix(text, "@param "))
			out.params = append(out.params, model.Param{Name: name, Description: rest})
		case strings.HasPrefix(text, "@return"):
			out.returns = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, "@returns"), "@return"))
		case strings.HasPrefix(text, "@throws "):
			name, rest := splitNameText(strings.TrimPrefix(text, "@throws "))
			out.throws = append(out.throws, model.Throw{Type: name, Description: rest})
		case strings.HasPrefix(text, "@property "):
			name, rest := splitNameText(strings.TrimPrefix(text, "@property "))
			out.properties = append(out.properties, model.Param{Name: name, Description: rest})
		case strings.HasPrefix(text, "@see "):
			target := strings.TrimSpace(strings.TrimPrefix(text, "@see "))
			out.seeAlso = append(out.seeAlso, model.Reference{Display: target, Target: target})
		case strings.HasPrefix(text, "@sample "):
			out.samples = append(out.samples, strings.TrimSpace(strings.TrimPrefix(text, "@sample ")))
		}
	}

	return out
}

// splitNameText splits "name rest of text" into its identifier and trailing text.
func splitNameText(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// clean strips the comment delimiters and the leading * from each line,
// dropping blank edge lines but keeping interior paragraph breaks.
func clean(raw string) string {
	raw = strings.TrimSpace(raw)
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

// Package classify determines what kind of declaration an anchor line is and
// extracts its bare name.
//
// Each dialect supplies an ordered pattern list; the first pattern that matches
// wins. Ordering is significant and deliberate: more specific forms (a generic
// type declaration) are listed before the general forms they would otherwise be
// captured by. This replaces map-iteration tie-breaking with a stable priority.
package classify

import (
	"regexp"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

// Pattern binds one declaration kind to the structural regexp recognizing it.
// The regexp must define a `name` capture group.
type Pattern struct {
	Kind model.Kind
	re   *regexp.Regexp
}

// NewPattern compiles expr, which must contain a (?P<name>...) group.
func NewPattern(kind model.Kind, expr string) Pattern {
	re := regexp.MustCompile(expr)
	if re.SubexpIndex("name") < 0 {
		panic("classify: pattern for " + string(kind) + " lacks a name group")
	}
	return Pattern{Kind: kind, re: re}
}

// Classifier matches anchor lines against an ordered priority list of patterns.
type Classifier struct {
	patterns []Pattern
}

// New builds a classifier from patterns in priority order.
func New(patterns ...Pattern) *Classifier {
	return &Classifier{patterns: patterns}
}

// Classify returns the declaration kind and name for the anchor line.
// ok is false when no pattern matches or the matched name is empty; callers
// treat that as an unrecognized anchor and drop the block silently.
func (c *Classifier) Classify(anchor string) (model.Kind, string, bool) {
	for _, p := range c.patterns {
		m := p.re.FindStringSubmatch(anchor)
		if m == nil {
			continue
		}
		name := m[p.re.SubexpIndex("name")]
		if name == "" {
			continue
		}
		return p.Kind, name, true
	}
	return "", "", false
}

const access = `(?:(?:public|private|internal|fileprivate|open|protected)\s+)?`

// Kotlin returns the anchor patterns for Kotlin declarations.
//
// enum class must precede the plain class form, and the generic class form must
// precede both the plain class (which would match the name) and nothing else.
func Kotlin() *Classifier {
	return New(
		NewPattern(model.KindEnum, access+`enum\s+class\s+(?P<name>\w+)`),
		NewPattern(model.KindType, access+`class\s+(?P<name>\w+)\s*<`),
		NewPattern(model.KindClass, access+`class\s+(?P<name>\w+)`),
		NewPattern(model.KindInterface, access+`interface\s+(?P<name>\w+)`),
		NewPattern(model.KindFunction, access+`\bfun\s+(?P<name>\w+)`),
		NewPattern(model.KindProperty, access+`\b(?:var|val)\s+(?P<name>\w+)`),
	)
}

// Swift returns the anchor patterns for Swift declarations.
//
// A generic class is reported as a type, checked before the plain class form;
// the enum-case form comes last so it never shadows full declarations.
func Swift() *Classifier {
	return New(
		NewPattern(model.KindType, access+`class\s+(?P<name>\w+)\s*<`),
		NewPattern(model.KindEnum, access+`enum\s+(?P<name>\w+)`),
		NewPattern(model.KindClass, access+`class\s+(?P<name>\w+)`),
		NewPattern(model.KindInterface, access+`protocol\s+(?P<name>\w+)`),
		NewPattern(model.KindFunction, access+`\bfunc\s+(?P<name>[A-Za-z_][A-Za-z0-9_]*)`),
		NewPattern(model.KindProperty, `(?:private\(set\)\s+)?\b(?:var|let)\s+(?P<name>\w+)`),
		NewPattern(model.KindEnumCase, `\bcase\s+(?P<name>\w+)(?:\s*=\s*[^,]+)?`),
	)
}

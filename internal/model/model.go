// Package model defines the dialect-independent documentation records produced
// by the extraction engine. One Documentation aggregate is built per source file;
// downstream consumers (renderer, site generator) only ever see these records,
// never raw comment syntax.
package model

// Kind identifies the declaration bucket a DocItem belongs to.
type Kind string

const (
	KindClass     Kind = "class"
	KindFunction  Kind = "function"
	KindProperty  Kind = "property"
	KindEnum      Kind = "enum"
	KindEnumCase  Kind = "case"
	KindInterface Kind = "interface"
	KindType      Kind = "type" // generic type declarations, kept distinct from class
)

// Kinds lists all buckets in stable presentation order.
func Kinds() []Kind {
	return []Kind{KindClass, KindType, KindInterface, KindFunction, KindProperty, KindEnum, KindEnumCase}
}

// Plural returns the bucket name used in aggregates and rendered output.
func (k Kind) Plural() string {
	switch k {
	case KindClass:
		return "classes"
	case KindFunction:
		return "functions"
	case KindProperty:
		return "properties"
	case KindEnum:
		return "enums"
	case KindEnumCase:
		return "cases"
	case KindInterface:
		return "interfaces"
	case KindType:
		return "types"
	default:
		return string(k) + "s"
	}
}

// Title returns a human-readable section heading for the bucket.
func (k Kind) Title() string {
	switch k {
	case KindClass:
		return "Classes"
	case KindFunction:
		return "Functions"
	case KindProperty:
		return "Properties"
	case KindEnum:
		return "Enums"
	case KindEnumCase:
		return "Enum Cases"
	case KindInterface:
		return "Interfaces"
	case KindType:
		return "Types"
	default:
		return string(k)
	}
}

// Param is one documented parameter or type parameter, in declaration order.
type Param struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Throw is one documented exception/error condition. Type may be empty for
// dialects that document only the condition, not the error type.
type Throw struct {
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Reference is a cross-reference entry (see/seealso/@see). Target is a symbol
// identifier or URL; Display defaults to Target when the source gave no text.
type Reference struct {
	Display string `yaml:"display"`
	Target  string `yaml:"target,omitempty"`
}

// EnumCase is one documented enum member.
type EnumCase struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DocItem is the canonical documentation record for one declaration.
//
// Name is never empty for emitted items; anchors that cannot be classified are
// dropped before an item is built. LineNumber is 0 when the dialect scanner does
// not track positions.
type DocItem struct {
	Name        string      `yaml:"name"`
	Kind        Kind        `yaml:"kind"`
	Description string      `yaml:"description,omitempty"`
	Signature   string      `yaml:"signature,omitempty"`
	Parameters  []Param     `yaml:"parameters,omitempty"`
	Returns     string      `yaml:"returns,omitempty"`
	Throws      []Throw     `yaml:"throws,omitempty"`
	Remarks     string      `yaml:"remarks,omitempty"`
	Examples    []string    `yaml:"examples,omitempty"`
	SeeAlso     []Reference `yaml:"see_also,omitempty"`
	TypeParams  []Param     `yaml:"type_params,omitempty"`
	Cases       []EnumCase  `yaml:"cases,omitempty"`
	SourceFile  string      `yaml:"source_file,omitempty"`
	LineNumber  int         `yaml:"line_number,omitempty"`
}

// Diagnostic describes a recoverable per-block parse problem. It carries enough
// context to locate the offending comment in the source file.
type Diagnostic struct {
	File    string `yaml:"file"`
	Line    int    `yaml:"line,omitempty"`
	Message string `yaml:"message"`
	Excerpt string `yaml:"excerpt,omitempty"`
}

// Documentation aggregates all DocItems extracted from one source file, grouped
// by kind bucket in source order, together with any block-level diagnostics.
type Documentation struct {
	SourceFile  string               `yaml:"source_file"`
	Dialect     string               `yaml:"dialect"`
	Buckets     map[string][]DocItem `yaml:"buckets"`
	Diagnostics []Diagnostic         `yaml:"diagnostics,omitempty"`
}

// NewDocumentation returns an empty aggregate for the given file and dialect.
func NewDocumentation(sourceFile, dialect string) *Documentation {
	return &Documentation{
		SourceFile: sourceFile,
		Dialect:    dialect,
		Buckets:    make(map[string][]DocItem),
	}
}

// Add appends the item to the bucket named by its kind. Bucket membership is
// decided by the classifier upstream; Add never re-buckets.
func (d *Documentation) Add(item DocItem) {
	bucket := item.Kind.Plural()
	d.Buckets[bucket] = append(d.Buckets[bucket], item)
}

// AddDiagnostic records a recoverable block-level problem.
func (d *Documentation) AddDiagnostic(diag Diagnostic) {
	d.Diagnostics = append(d.Diagnostics, diag)
}

// Items returns the bucket for the given kind (possibly nil).
func (d *Documentation) Items(k Kind) []DocItem {
	return d.Buckets[k.Plural()]
}

// Len reports the total number of items across all buckets.
func (d *Documentation) Len() int {
	n := 0
	for _, items := range d.Buckets {
		n += len(items)
	}
	return n
}

// IsEmpty reports whether no items were extracted.
func (d *Documentation) IsEmpty() bool { return d.Len() == 0 }

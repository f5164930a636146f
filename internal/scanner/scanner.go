// Package scanner locates doc-comment blocks in raw source text and pairs each
// block with its anchor, the first non-blank non-comment line that follows it.
// It knows comment delimiters only; tag grammars belong to the dialect parsers.
package scanner

import "strings"

// Form distinguishes the two comment shapes a block can take.
type Form int

const (
	// FormLine is a run of contiguous line comments (e.g. ///).
	FormLine Form = iota
	// FormBlock is a single delimited comment (e.g. /** ... */).
	FormBlock
)

// Block is one raw doc-comment block.
//
// For FormLine blocks Text holds the marker-stripped lines joined by newlines.
// For FormBlock blocks Text holds the raw span including the delimiters, so the
// dialect parser can apply its own per-line cleanup.
type Block struct {
	Text       string
	Form       Form
	StartLine  int    // 1-based line of the first comment line
	Anchor     string // "" when the block is followed by no code line
	AnchorLine int    // 1-based, 0 when Anchor is ""
}

// Mode selects which comment shapes an Iter recognizes.
type Mode int

const (
	// LineComments recognizes only the line marker.
	LineComments Mode = iota
	// BlockComments recognizes only the open/close pair.
	BlockComments
	// Mixed recognizes both shapes in one pass. Line markers are checked first
	// so a /// run is never mistaken for a block opener.
	Mixed
)

// Iter walks one file's lines and yields doc blocks in source order. It holds no
// state beyond its position, so Reset makes it restartable over the same input.
type Iter struct {
	lines  []string
	pos    int
	mode   Mode
	marker string
	open   string
	close  string
}

// New returns an iterator over content using the default markers for mode
// (/// line comments, slash-star-star block comments).
func New(content string, mode Mode) *Iter {
	return &Iter{
		lines:  strings.Split(content, "\n"),
		mode:   mode,
		marker: "///",
		open:   "/**",
		close:  "*/",
	}
}

// Reset rewinds the iterator to the start of the input.
func (it *Iter) Reset() { it.pos = 0 }

// Next returns the next doc block, or ok=false when the input is exhausted.
// A trailing block with no following code line is not returned as an anchored
// block; it comes back with Anchor == "" and the caller decides to drop it.
func (it *Iter) Next() (Block, bool) {
	for it.pos < len(it.lines) {
		trimmed := strings.TrimSpace(it.lines[it.pos])

		if it.mode != BlockComments && strings.HasPrefix(trimmed, it.marker) {
			return it.scanLineBlock(), true
		}
		if it.mode != LineComments && strings.HasPrefix(trimmed, it.open) {
			return it.scanBlockComment(), true
		}
		it.pos++
	}
	return Block{}, false
}

// All drains the iterator into a slice. Convenience for callers that do not
// need incremental consumption.
func (it *Iter) All() []Block {
	var blocks []Block
	for {
		b, ok := it.Next()
		if !ok {
			return blocks
		}
		blocks = append(blocks, b)
	}
}

func (it *Iter) scanLineBlock() Block {
	start := it.pos
	var stripped []string
	for it.pos < len(it.lines) {
		trimmed := strings.TrimSpace(it.lines[it.pos])
		if !strings.HasPrefix(trimmed, it.marker) {
			break
		}
		stripped = append(stripped, strings.TrimPrefix(strings.TrimPrefix(trimmed, it.marker), " "))
		it.pos++
	}

	b := Block{
		Text:      strings.Join(stripped, "\n"),
		Form:      FormLine,
		StartLine: start + 1,
	}
	it.attachAnchor(&b)
	return b
}

func (it *Iter) scanBlockComment() Block {
	start := it.pos
	var raw []string
	for it.pos < len(it.lines) {
		line := it.lines[it.pos]
		raw = append(raw, line)
		it.pos++
		// The close marker may share the opening line (one-line comment).
		rest := line
		if it.pos-1 == start {
			if idx := strings.Index(line, it.open); idx >= 0 {
				rest = line[idx+len(it.open):]
			}
		}
		if strings.Contains(rest, it.close) {
			break
		}
	}

	b := Block{
		Text:      strings.Join(raw, "\n"),
		Form:      FormBlock,
		StartLine: start + 1,
	}
	it.attachAnchor(&b)
	return b
}

// attachAnchor skips blank lines after the block and records the next code line
// without consuming it. A following comment line means this block is orphaned:
// the anchor stays empty and scanning resumes at that comment.
func (it *Iter) attachAnchor(b *Block) {
	pos := it.pos
	for pos < len(it.lines) && strings.TrimSpace(it.lines[pos]) == "" {
		pos++
	}
	if pos >= len(it.lines) {
		it.pos = pos
		return
	}
	trimmed := strings.TrimSpace(it.lines[pos])
	if strings.HasPrefix(trimmed, it.marker) || strings.HasPrefix(trimmed, it.open) {
		// Orphaned block; leave the comment for the next Next call.
		it.pos = pos
		return
	}
	b.Anchor = it.lines[pos]
	b.AnchorLine = pos + 1
	it.pos = pos + 1
}

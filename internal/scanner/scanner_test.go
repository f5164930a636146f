package scanner

import (
	"strings"
	"testing"
)

func TestLineBlocksWithAnchor(t *testing.T) {
	content := strings.Join([]string{
		"import Foundation",
		"",
		"/// Computes a sum.",
		"/// Second line.",
		"func add(a: Int, b: Int) -> Int {",
		"}",
	}, "\n")

	blocks := New(content, LineComments).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Text != "Computes a sum.\nSecond line." {
		t.Errorf("unexpected block text: %q", b.Text)
	}
	if b.StartLine != 3 {
		t.Errorf("StartLine = %d, want 3", b.StartLine)
	}
	if !strings.Contains(b.Anchor, "func add") {
		t.Errorf("unexpected anchor: %q", b.Anchor)
	}
	if b.AnchorLine != 5 {
		t.Errorf("AnchorLine = %d, want 5", b.AnchorLine)
	}
}

func TestBlankLinesBetweenBlockAndAnchorAreSkipped(t *testing.T) {
	content := "/// Doc.\n\n\nclass Widget {"
	blocks := New(content, LineComments).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Anchor != "class Widget {" {
		t.Errorf("unexpected anchor: %q", blocks[0].Anchor)
	}
	if blocks[0].AnchorLine != 4 {
		t.Errorf("AnchorLine = %d, want 4", blocks[0].AnchorLine)
	}
}

func TestBlockCommentSpanIsRawInclusive(t *testing.T) {
	content := strings.Join([]string{
		"/**",
		" * Greets someone.",
		" * @param name who to greet",
		" */",
		"fun greet(name: String) {}",
	}, "\n")

	blocks := New(content, BlockComments).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if !strings.HasPrefix(b.Text, "/**") || !strings.Contains(b.Text, "*/") {
		t.Errorf("block span should include delimiters: %q", b.Text)
	}
	if b.Form != FormBlock {
		t.Errorf("Form = %v, want FormBlock", b.Form)
	}
	if !strings.Contains(b.Anchor, "fun greet") {
		t.Errorf("unexpected anchor: %q", b.Anchor)
	}
}

func TestOneLineBlockComment(t *testing.T) {
	content := "/** Short doc. */\nval name = \"x\""
	blocks := New(content, BlockComments).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "/** Short doc. */" {
		t.Errorf("unexpected text: %q", blocks[0].Text)
	}
	if !strings.Contains(blocks[0].Anchor, "val name") {
		t.Errorf("unexpected anchor: %q", blocks[0].Anchor)
	}
}

func TestMixedFormsInOnePass(t *testing.T) {
	content := strings.Join([]string{
		"/// Line style.",
		"func a() {}",
		"",
		"/** Block style. */",
		"func b() {}",
	}, "\n")

	blocks := New(content, Mixed).All()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Form != FormLine || blocks[1].Form != FormBlock {
		t.Errorf("forms = %v, %v", blocks[0].Form, blocks[1].Form)
	}
}

func TestOrphanedBlockAtEOFHasNoAnchor(t *testing.T) {
	content := "func a() {}\n/// Dangling comment.\n"
	blocks := New(content, LineComments).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Anchor != "" {
		t.Errorf("expected empty anchor, got %q", blocks[0].Anchor)
	}
}

func TestBlockFollowedByAnotherCommentIsOrphaned(t *testing.T) {
	content := strings.Join([]string{
		"/// First, documents nothing.",
		"",
		"/// Second, documents the function.",
		"func real() {}",
	}, "\n")

	blocks := New(content, LineComments).All()
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Anchor != "" {
		t.Errorf("first block should be orphaned, got anchor %q", blocks[0].Anchor)
	}
	if !strings.Contains(blocks[1].Anchor, "func real") {
		t.Errorf("second block anchor = %q", blocks[1].Anchor)
	}
}

func TestResetRestartsIteration(t *testing.T) {
	it := New("/// Doc.\nfunc a() {}", LineComments)
	first := it.All()
	it.Reset()
	second := it.All()
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 block on both passes, got %d and %d", len(first), len(second))
	}
	if first[0] != second[0] {
		t.Errorf("passes disagree: %+v vs %+v", first[0], second[0])
	}
}

func TestLineMarkerNotMistakenForBlockOpener(t *testing.T) {
	// A /// run that happens to contain ** must stay a line block in Mixed mode.
	content := "/// uses **bold** text\nfunc a() {}"
	blocks := New(content, Mixed).All()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Form != FormLine {
		t.Errorf("Form = %v, want FormLine", blocks[0].Form)
	}
}

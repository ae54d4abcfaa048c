package report

import (
	"strings"
	"testing"
)

func TestParse_SectionTreeAndSpans(t *testing.T) {
	input := "# Title\n\nSome **bold** text.\n\n## Sub\n- item one\n- item two"
	doc := Parse(input)

	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(doc.Sections))
	}
	top := doc.Sections[0]
	if top.Level != 1 || top.Title != "Title" {
		t.Errorf("expected level-1 section %q, got level %d %q", "Title", top.Level, top.Title)
	}

	if len(top.Blocks) != 1 {
		t.Fatalf("expected 1 block under Title, got %d", len(top.Blocks))
	}
	para := top.Blocks[0]
	if para.Kind != KindParagraph {
		t.Fatalf("expected paragraph, got kind %d", para.Kind)
	}
	want := InlineRun{
		{Kind: SpanPlain, Text: "Some "},
		{Kind: SpanBold, Text: "bold"},
		{Kind: SpanPlain, Text: " text."},
	}
	if len(para.Run) != len(want) {
		t.Fatalf("expected %d spans, got %d: %#v", len(want), len(para.Run), para.Run)
	}
	for i, sp := range want {
		if para.Run[i].Kind != sp.Kind || para.Run[i].Text != sp.Text {
			t.Errorf("span %d: expected %#v, got %#v", i, sp, para.Run[i])
		}
	}

	if len(top.Children) != 1 {
		t.Fatalf("expected 1 child section, got %d", len(top.Children))
	}
	sub := top.Children[0]
	if sub.Level != 2 || sub.Title != "Sub" {
		t.Errorf("expected level-2 section %q, got level %d %q", "Sub", sub.Level, sub.Title)
	}
	if len(sub.Blocks) != 2 {
		t.Fatalf("expected 2 list items, got %d", len(sub.Blocks))
	}
	for i, b := range sub.Blocks {
		if b.Kind != KindListItem || b.Ordered {
			t.Errorf("block %d: expected unordered list item, got %#v", i, b)
		}
	}
}

func TestParse_UnterminatedFence(t *testing.T) {
	input := "# Code\n\n```go\nfunc main() {\n\tprintln(\"hi\")\n}"
	doc := Parse(input)

	sec := doc.Sections[0]
	if len(sec.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(sec.Blocks))
	}
	code := sec.Blocks[0]
	if code.Kind != KindCodeBlock {
		t.Fatalf("expected code block, got kind %d", code.Kind)
	}
	if code.Lang != "go" {
		t.Errorf("expected language hint %q, got %q", "go", code.Lang)
	}
	wantLines := []string{"func main() {", "\tprintln(\"hi\")", "}"}
	if len(code.Lines) != len(wantLines) {
		t.Fatalf("expected %d verbatim lines, got %d: %q", len(wantLines), len(code.Lines), code.Lines)
	}
	for i, l := range wantLines {
		if code.Lines[i] != l {
			t.Errorf("line %d: expected %q, got %q", i, l, code.Lines[i])
		}
	}
}

func TestParse_QuoteMergingByDepth(t *testing.T) {
	input := "> first line\n> second line\n>> nested\n\n> after blank"
	doc := Parse(input)

	blocks := doc.Sections[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("expected 3 quote blocks, got %d", len(blocks))
	}
	if blocks[0].Depth != 1 || blocks[0].Run.Text() != "first line second line" {
		t.Errorf("merged quote wrong: depth %d text %q", blocks[0].Depth, blocks[0].Run.Text())
	}
	if blocks[1].Depth != 2 || blocks[1].Run.Text() != "nested" {
		t.Errorf("nested quote wrong: depth %d text %q", blocks[1].Depth, blocks[1].Run.Text())
	}
	if blocks[2].Depth != 1 || blocks[2].Run.Text() != "after blank" {
		t.Errorf("post-blank quote wrong: depth %d text %q", blocks[2].Depth, blocks[2].Run.Text())
	}
}

func TestParse_ListNestingAndOrdering(t *testing.T) {
	input := "- top\n    - nested\n1. first\n2. second"
	doc := Parse(input)

	blocks := doc.Sections[0].Blocks
	if len(blocks) != 4 {
		t.Fatalf("expected 4 list items, got %d", len(blocks))
	}
	if blocks[0].Depth != 0 || blocks[1].Depth != 1 {
		t.Errorf("expected depths 0 and 1, got %d and %d", blocks[0].Depth, blocks[1].Depth)
	}
	if !blocks[2].Ordered || blocks[2].Marker != "1" {
		t.Errorf("expected ordered item with marker 1, got %#v", blocks[2])
	}
	if !blocks[3].Ordered || blocks[3].Marker != "2" {
		t.Errorf("expected ordered item with marker 2, got %#v", blocks[3])
	}
}

func TestParse_RuleAndParagraphJoining(t *testing.T) {
	input := "line one\nline two\n\n---\n\nline three"
	doc := Parse(input)

	blocks := doc.Sections[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].Kind != KindParagraph || blocks[0].Run.Text() != "line one line two" {
		t.Errorf("expected joined paragraph, got %q", blocks[0].Run.Text())
	}
	if blocks[1].Kind != KindRule {
		t.Errorf("expected rule, got kind %d", blocks[1].Kind)
	}
	if blocks[2].Kind != KindParagraph || blocks[2].Run.Text() != "line three" {
		t.Errorf("expected trailing paragraph, got %q", blocks[2].Run.Text())
	}
}

func TestParse_PreambleGetsUntitledSection(t *testing.T) {
	doc := Parse("no headings here at all\n\n# Later")
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Heading != nil || len(doc.Sections[0].Blocks) != 1 {
		t.Errorf("expected untitled preamble section with 1 block")
	}
	if doc.Sections[1].Title != "Later" {
		t.Errorf("expected section %q, got %q", "Later", doc.Sections[1].Title)
	}
}

func TestParse_SkippedHeadingLevels(t *testing.T) {
	doc := Parse("# One\n\n### Three")
	top := doc.Sections[0]
	if len(top.Children) != 1 {
		t.Fatalf("expected 1 synthetic child, got %d", len(top.Children))
	}
	mid := top.Children[0]
	if mid.Level != 2 || mid.Heading != nil {
		t.Errorf("expected synthetic level-2 section, got level %d heading %v", mid.Level, mid.Heading)
	}
	if len(mid.Children) != 1 || mid.Children[0].Level != 3 || mid.Children[0].Title != "Three" {
		t.Fatalf("expected level-3 section %q under the synthetic one", "Three")
	}
	// The heading block keeps its real level.
	if mid.Children[0].Heading.Level != 3 {
		t.Errorf("expected heading block level 3, got %d", mid.Children[0].Heading.Level)
	}
}

func TestParse_EmptyInputIsNonEmptyDocument(t *testing.T) {
	doc := Parse("")
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section for empty input, got %d", len(doc.Sections))
	}
	if len(doc.Sections[0].Blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(doc.Sections[0].Blocks))
	}
}

func TestParse_MalformedSyntaxDegradesToParagraph(t *testing.T) {
	inputs := []string{
		"####### seven hashes is not a heading",
		"#no space after hash",
		"| not | a | table |",
	}
	for _, in := range inputs {
		doc := Parse(in)
		blocks := doc.Sections[0].Blocks
		if len(blocks) != 1 || blocks[0].Kind != KindParagraph {
			t.Errorf("input %q: expected a single paragraph, got %#v", in, blocks)
			continue
		}
		if !strings.Contains(blocks[0].Run.Text(), strings.TrimSpace(in)) {
			t.Errorf("input %q: text lost, got %q", in, blocks[0].Run.Text())
		}
	}
}

// Package report turns loosely structured markdown, as produced by an AI
// summarizer, into a paginated PDF report with a table of contents.
package report

import "fmt"

// BlockKind identifies one structural unit of markdown content.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindListItem
	KindQuote
	KindCodeBlock
	KindRule
)

// SpanKind identifies a typed fragment of inline text.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
)

// Span is one inline fragment. URL is set only for SpanLink.
type Span struct {
	Kind SpanKind
	Text string
	URL  string
}

// InlineRun is an ordered sequence of spans. Concatenating the span texts
// reconstructs the source line with only the markdown markers removed.
type InlineRun []Span

// Text returns the visible text of the run.
func (r InlineRun) Text() string {
	out := ""
	for _, sp := range r {
		out += sp.Text
	}
	return out
}

// unassigned marks a block that pagination has not placed yet.
const unassigned = -1

// PageAssignment records where pagination placed a block: a 0-based content
// page index, the vertical offset from the top margin, and the measured
// height of the block's own content.
type PageAssignment struct {
	Page   int
	Offset float64
	Height float64
}

// Block is a closed tagged variant over the structural kinds. Which fields
// are meaningful depends on Kind: Level for headings, Depth/Ordered/Marker
// for list items and quotes, Lang/Lines for code blocks, Run for everything
// that carries inline text.
type Block struct {
	Kind    BlockKind
	Level   int
	Depth   int
	Ordered bool
	Marker  string
	Run     InlineRun
	Lang    string
	Lines   []string

	Style Style
	Page  PageAssignment
}

func newBlock(kind BlockKind) *Block {
	return &Block{Kind: kind, Page: PageAssignment{Page: unassigned}}
}

// Section is a heading and everything nested beneath it until a heading of
// equal or lower level. Children are always exactly one level deeper;
// skipped heading levels get synthetic untitled sections in between.
type Section struct {
	Level    int
	Title    string
	Heading  *Block // nil for untitled sections
	Blocks   []*Block
	Children []*Section
}

// TOCEntry is one row of the table of contents. Page is the 0-based content
// page index assigned to the entry's heading.
type TOCEntry struct {
	Text  string
	Level int
	Page  int
}

// Document is the in-memory tree built once per input, transformed in place
// by the style, pagination and TOC passes, and then rendered.
type Document struct {
	Sections []*Section
	TOC      []TOCEntry
}

// eachSection visits every section depth-first in document order.
func (d *Document) eachSection(fn func(*Section)) {
	var walk func(*Section)
	walk = func(s *Section) {
		fn(s)
		for _, c := range s.Children {
			walk(c)
		}
	}
	for _, s := range d.Sections {
		walk(s)
	}
}

// eachBlock visits every block, section headings included, in the order
// pagination and rendering consume them.
func (d *Document) eachBlock(fn func(*Block)) {
	d.eachSection(func(s *Section) {
		if s.Heading != nil {
			fn(s.Heading)
		}
		for _, b := range s.Blocks {
			fn(b)
		}
	})
}

// Color is an RGB triple in 0..255 components.
type Color struct {
	R, G, B int
}

// Style is the resolved visual treatment of a block. Values are computed by
// Resolve and never mutated afterwards.
type Style struct {
	Family      string
	FontStyle   string // "", "B", "I" or "BI"
	Size        float64
	Color       Color
	Indent      float64
	SpaceBefore float64
	SpaceAfter  float64
}

// Config is the explicit engine configuration. All distances are in points.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	BaseFontSize float64

	// TOCMaxLevel is the deepest heading level listed in the table of
	// contents. MaxDepth caps list/quote nesting for indent purposes.
	TOCMaxLevel int
	MaxDepth    int

	// Title and Subtitle, when set, produce a cover page.
	Title    string
	Subtitle string
	TOCTitle string
}

// DefaultConfig returns A4 geometry with the margins and type scale the
// report layout was designed around.
func DefaultConfig() Config {
	return Config{
		PageWidth:    595.28,
		PageHeight:   841.89,
		Margin:       50,
		BaseFontSize: 11,
		TOCMaxLevel:  3,
		MaxDepth:     4,
		TOCTitle:     "Table of Contents",
	}
}

// Validate rejects unusable page geometry. This is the engine's only error
// path; every other malformed input degrades gracefully.
func (c Config) Validate() error {
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("report: non-positive page size %gx%g", c.PageWidth, c.PageHeight)
	}
	if c.Margin < 0 || 2*c.Margin >= c.PageWidth || 2*c.Margin >= c.PageHeight {
		return fmt.Errorf("report: margin %g leaves no printable area", c.Margin)
	}
	if c.BaseFontSize <= 0 {
		return fmt.Errorf("report: non-positive base font size %g", c.BaseFontSize)
	}
	return nil
}

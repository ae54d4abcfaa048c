package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// tocLevelStyles mirrors the heading hierarchy in the contents listing.
var tocLevelStyles = map[int]Style{
	1: {Family: "Helvetica", FontStyle: "B", Size: 13, Color: colorH1},
	2: {Family: "Helvetica", Size: 11, Color: colorBody},
	3: {Family: "Helvetica", Size: 10, Color: colorList},
}

// Render draws a styled, paginated document into PDF bytes: cover page if
// the config carries a title, then the contents listing, then every content
// page at the offsets pagination decided. Its own logic is strictly the
// ordering and placement handoff; all drawing goes through gofpdf.
func Render(d *Document, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &renderer{
		doc: d,
		cfg: cfg,
		pdf: gofpdf.NewCustom(&gofpdf.InitType{
			OrientationStr: "P",
			UnitStr:        "pt",
			Size:           gofpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
		}),
	}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")
	r.pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	r.pdf.SetAutoPageBreak(false, 0)

	// The listing's length shifts where content drawing begins. Row height
	// is fixed and entry numbers are content-relative, so recomputing the
	// count is a fixed point after one round; the cap is a guard rail.
	front := 0
	for i := 0; i < 2; i++ {
		n := r.frontPageCount()
		if n == front {
			break
		}
		front = n
	}
	r.front = front

	r.pdf.SetFooterFunc(func() {
		if r.pdf.PageNo() <= r.front {
			return
		}
		r.pdf.SetY(cfg.PageHeight - cfg.Margin + 6)
		r.pdf.SetFont("Helvetica", "I", 8)
		r.pdf.SetTextColor(colorQuote.R, colorQuote.G, colorQuote.B)
		r.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", r.pdf.PageNo()-r.front),
			"", 0, "C", false, 0, "")
	})

	r.cover()
	r.contents()
	r.content()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	doc   *Document
	cfg   Config
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	front int // cover + contents pages preceding content page 0
}

func (r *renderer) frontPageCount() int {
	n := tocPageCount(r.cfg, len(r.doc.TOC))
	if r.cfg.Title != "" {
		n++
	}
	return n
}

func (r *renderer) cover() {
	if r.cfg.Title == "" {
		return
	}
	r.pdf.AddPage()
	r.pdf.SetY(r.cfg.PageHeight / 3)
	r.pdf.SetFont("Helvetica", "B", 26)
	r.pdf.SetTextColor(17, 24, 39)
	r.pdf.MultiCell(0, 32, r.tr(r.cfg.Title), "", "C", false)
	if r.cfg.Subtitle != "" {
		r.pdf.Ln(10)
		r.pdf.SetFont("Helvetica", "", 12)
		r.pdf.SetTextColor(colorQuote.R, colorQuote.G, colorQuote.B)
		r.pdf.MultiCell(0, 16, r.tr(r.cfg.Subtitle), "", "C", false)
	}
}

// contents draws the listing pages: one dotted row per entry with the
// 1-based content page number right-aligned and an internal link to it.
func (r *renderer) contents() {
	if len(r.doc.TOC) == 0 {
		return
	}
	r.pdf.AddPage()
	r.pdf.SetFont("Helvetica", "B", 24)
	r.pdf.SetTextColor(17, 24, 39)
	r.pdf.Cell(0, 26, r.tr(r.cfg.TOCTitle))
	r.pdf.Ln(tocTitleHeight)

	width := r.cfg.PageWidth - 2*r.cfg.Margin
	bottom := r.cfg.PageHeight - r.cfg.Margin
	for _, e := range r.doc.TOC {
		if r.pdf.GetY()+tocRowHeight > bottom {
			r.pdf.AddPage()
		}
		st, ok := tocLevelStyles[e.Level]
		if !ok {
			st = tocLevelStyles[3]
		}
		r.pdf.SetFont(st.Family, st.FontStyle, st.Size)
		r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)

		indent := float64(e.Level-1) * 14
		r.pdf.SetX(r.cfg.Margin + indent)
		link := r.pdf.AddLink()
		r.pdf.SetLink(link, 0, r.front+e.Page+1)
		r.pdf.CellFormat(width*0.85-indent, tocRowHeight, r.tr(e.Text),
			"", 0, "L", false, link, "")
		r.pdf.CellFormat(width*0.15, tocRowHeight, fmt.Sprintf("... %d", e.Page+1),
			"", 1, "R", false, link, "")
	}
}

// content walks the document and draws each block on its assigned page.
func (r *renderer) content() {
	current := -1
	r.doc.eachBlock(func(b *Block) {
		for current < b.Page.Page {
			r.pdf.AddPage()
			current++
		}
		r.draw(b)
	})
	// A document with content but no pages yet still gets one page.
	if current == -1 && r.pdf.PageNo() == 0 {
		r.pdf.AddPage()
	}
}

func (r *renderer) draw(b *Block) {
	st := b.Style
	x := r.cfg.Margin + st.Indent
	y := r.cfg.Margin + b.Page.Offset
	r.pdf.SetXY(x, y)
	r.pdf.SetFont(st.Family, st.FontStyle, st.Size)
	r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)

	switch b.Kind {
	case KindHeading, KindParagraph, KindQuote:
		r.writeRun(b.Run, st, x)
	case KindListItem:
		bullet := "• "
		if b.Ordered {
			bullet = b.Marker + ". "
		}
		r.pdf.SetLeftMargin(x)
		r.pdf.Write(lineHeight(st), r.tr(bullet))
		r.writeRunSpans(b.Run, st)
		r.pdf.SetLeftMargin(r.cfg.Margin)
	case KindCodeBlock:
		r.pdf.SetFillColor(245, 245, 245)
		for _, line := range b.Lines {
			r.pdf.SetX(x)
			r.pdf.CellFormat(columnWidth(r.cfg, st), lineHeight(st), r.tr(line),
				"", 2, "L", true, 0, "")
		}
	case KindRule:
		r.pdf.SetDrawColor(st.Color.R, st.Color.G, st.Color.B)
		r.pdf.SetLineWidth(0.7)
		mid := y + ruleHeight/2
		r.pdf.Line(r.cfg.Margin, mid, r.cfg.PageWidth-r.cfg.Margin, mid)
	}
}

// writeRun flows a span run inside the block's column, wrapping at the
// page's right margin.
func (r *renderer) writeRun(run InlineRun, st Style, x float64) {
	r.pdf.SetLeftMargin(x)
	r.pdf.SetX(x)
	r.writeRunSpans(run, st)
	r.pdf.SetLeftMargin(r.cfg.Margin)
}

// writeRunSpans switches fonts per span and restores the base style after
// each one.
func (r *renderer) writeRunSpans(run InlineRun, st Style) {
	lh := lineHeight(st)
	for _, sp := range run {
		switch sp.Kind {
		case SpanBold:
			r.pdf.SetFont(st.Family, mergeFontStyle(st.FontStyle, "B"), st.Size)
			r.pdf.Write(lh, r.tr(sp.Text))
		case SpanItalic:
			r.pdf.SetFont(st.Family, mergeFontStyle(st.FontStyle, "I"), st.Size)
			r.pdf.Write(lh, r.tr(sp.Text))
		case SpanCode:
			r.pdf.SetFont("Courier", "", st.Size-1)
			r.pdf.SetTextColor(colorCode.R, colorCode.G, colorCode.B)
			r.pdf.Write(lh, r.tr(sp.Text))
			r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
		case SpanLink:
			r.pdf.SetTextColor(colorAccent.R, colorAccent.G, colorAccent.B)
			r.pdf.WriteLinkString(lh, r.tr(sp.Text), sp.URL)
			r.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
		default:
			r.pdf.Write(lh, r.tr(sp.Text))
		}
		r.pdf.SetFont(st.Family, st.FontStyle, st.Size)
	}
}

func mergeFontStyle(base, add string) string {
	if strings.Contains(base, add) {
		return base
	}
	return base + add
}

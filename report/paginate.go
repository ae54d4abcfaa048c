package report

import "strings"

// Paginate assigns a page index, vertical offset and measured height to
// every block, splitting paragraphs by words and code blocks by lines when
// they straddle a page boundary. The only error is invalid geometry,
// checked before any placement happens.
func Paginate(d *Document, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p := &pager{cfg: cfg, limit: cfg.PageHeight - 2*cfg.Margin}
	d.eachSection(func(s *Section) {
		if s.Heading != nil {
			p.place(s.Heading)
		}
		var placed []*Block
		for _, b := range s.Blocks {
			placed = append(placed, p.place(b)...)
		}
		s.Blocks = placed
	})
	return nil
}

type pager struct {
	cfg   Config
	page  int
	y     float64
	limit float64
}

func (p *pager) newPage() {
	p.page++
	p.y = 0
}

func (p *pager) assign(b *Block, h float64) {
	b.Page = PageAssignment{Page: p.page, Offset: p.y + b.Style.SpaceBefore, Height: h}
}

// place runs the per-block state machine: fit, split, or break. Splitting
// consumes at least one sub-unit per round, so the loop always terminates.
// The returned slice is the block plus any continuations, in order.
func (p *pager) place(b *Block) []*Block {
	var placed []*Block
	cur := b
	for cur != nil {
		st := cur.Style
		h := blockHeight(cur, p.cfg)
		need := st.SpaceBefore + h + st.SpaceAfter
		rem := p.limit - p.y

		// A heading must keep at least one following line on its page.
		if cur.Kind == KindHeading && p.y > 0 && need+lineHeight(st) > rem {
			p.newPage()
			continue
		}

		if need <= rem {
			p.assign(cur, h)
			p.y += need
			placed = append(placed, cur)
			break
		}

		if head, tail := p.split(cur, rem-st.SpaceBefore-st.SpaceAfter); head != nil {
			p.assign(head, blockHeight(head, p.cfg))
			placed = append(placed, head)
			p.newPage()
			cur = tail
			continue
		}

		if p.y == 0 {
			// Taller than a whole page even from the top: place it
			// overflowing rather than drop content.
			p.assign(cur, h)
			placed = append(placed, cur)
			p.newPage()
			break
		}
		p.newPage()
	}
	return placed
}

// split carves the prefix of a splittable block that fits the given height
// budget. It returns nil when the block is unsplittable or not even one
// sub-unit fits.
func (p *pager) split(b *Block, budget float64) (head, tail *Block) {
	lh := lineHeight(b.Style)
	fit := int(budget / lh)
	if fit < 1 {
		return nil, nil
	}

	switch b.Kind {
	case KindCodeBlock:
		if fit >= len(b.Lines) {
			return nil, nil
		}
		head = cloneFor(b)
		head.Lines = b.Lines[:fit]
		tail = cloneFor(b)
		tail.Lines = b.Lines[fit:]
		return head, tail
	case KindParagraph:
		lines := wrapRun(b.Run, b.Style, p.cfg)
		if fit >= len(lines) {
			return nil, nil
		}
		words := 0
		for _, l := range lines[:fit] {
			words += len(strings.Fields(l))
		}
		front, rest := splitRun(b.Run, words)
		if len(front) == 0 || len(rest) == 0 {
			return nil, nil
		}
		head = cloneFor(b)
		head.Run = front
		tail = cloneFor(b)
		tail.Run = rest
		return head, tail
	}
	return nil, nil
}

// cloneFor copies a block's identity and style for a split part, leaving
// the page fields unset.
func cloneFor(b *Block) *Block {
	c := newBlock(b.Kind)
	c.Level = b.Level
	c.Depth = b.Depth
	c.Ordered = b.Ordered
	c.Marker = b.Marker
	c.Lang = b.Lang
	c.Style = b.Style
	return c
}

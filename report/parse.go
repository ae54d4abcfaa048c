package report

import "strings"

// Parse builds a Document from raw markdown. It is a total function:
// unrecognized syntax degrades to plain paragraphs and an unterminated code
// fence is closed at end of input, so there is no failure mode.
func Parse(raw string) *Document {
	p := &parser{doc: &Document{}}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		p.feed(line)
	}
	p.closeBlocks()
	if len(p.doc.Sections) == 0 {
		p.doc.Sections = append(p.doc.Sections, &Section{Level: 1})
	}
	return p.doc
}

type parser struct {
	doc   *Document
	stack []*Section

	para       []string
	quoteLines []string
	quoteDepth int
	code       *Block
}

func (p *parser) feed(line string) {
	if p.code != nil {
		if isFence(strings.TrimSpace(line)) {
			p.code = nil
			return
		}
		p.code.Lines = append(p.code.Lines, line)
		return
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		p.closeBlocks()
	case isFence(trimmed):
		p.closeBlocks()
		p.code = newBlock(KindCodeBlock)
		p.code.Lang = strings.TrimLeft(trimmed, "`")
		p.append(p.code)
	case isHeading(trimmed):
		p.closeBlocks()
		level, text := splitHeading(trimmed)
		p.openSection(level, text)
	case isRule(trimmed):
		p.closeBlocks()
		p.append(newBlock(KindRule))
	case strings.HasPrefix(trimmed, ">"):
		p.closePara()
		depth, text := splitQuote(trimmed)
		if p.quoteLines != nil && depth != p.quoteDepth {
			p.closeQuote()
		}
		p.quoteDepth = depth
		p.quoteLines = append(p.quoteLines, text)
	case isListItem(trimmed):
		p.closeBlocks()
		b := newBlock(KindListItem)
		b.Depth = listDepth(line)
		b.Ordered, b.Marker = listMarker(trimmed)
		b.Run = parseInline(listText(trimmed))
		p.append(b)
	default:
		p.closeQuote()
		p.para = append(p.para, trimmed)
	}
}

// closeBlocks ends any open paragraph or quote run.
func (p *parser) closeBlocks() {
	p.closePara()
	p.closeQuote()
}

func (p *parser) closePara() {
	if len(p.para) == 0 {
		return
	}
	b := newBlock(KindParagraph)
	b.Run = parseInline(strings.Join(p.para, " "))
	p.para = nil
	p.append(b)
}

func (p *parser) closeQuote() {
	if p.quoteLines == nil {
		return
	}
	b := newBlock(KindQuote)
	b.Depth = p.quoteDepth
	b.Run = parseInline(strings.Join(p.quoteLines, " "))
	p.quoteLines = nil
	p.append(b)
}

// append adds a block to the innermost open section, creating an untitled
// section when content appears before the first heading.
func (p *parser) append(b *Block) {
	if len(p.stack) == 0 {
		s := &Section{Level: 1}
		p.doc.Sections = append(p.doc.Sections, s)
		p.stack = append(p.stack, s)
	}
	top := p.stack[len(p.stack)-1]
	top.Blocks = append(top.Blocks, b)
}

// openSection closes sections at or below the new level, inserts synthetic
// sections for skipped levels, and opens the new one.
func (p *parser) openSection(level int, text string) {
	for len(p.stack) > 0 && p.stack[len(p.stack)-1].Level >= level {
		p.stack = p.stack[:len(p.stack)-1]
	}
	for len(p.stack) > 0 && p.stack[len(p.stack)-1].Level+1 < level {
		p.push(&Section{Level: p.stack[len(p.stack)-1].Level + 1})
	}

	h := newBlock(KindHeading)
	h.Level = level
	h.Run = parseInline(text)
	p.push(&Section{Level: level, Title: h.Run.Text(), Heading: h})
}

func (p *parser) push(s *Section) {
	if len(p.stack) == 0 {
		p.doc.Sections = append(p.doc.Sections, s)
	} else {
		top := p.stack[len(p.stack)-1]
		top.Children = append(top.Children, s)
	}
	p.stack = append(p.stack, s)
}

func isFence(s string) bool {
	body := strings.TrimLeft(s, "`")
	ticks := len(s) - len(body)
	return ticks >= 3 && !strings.Contains(body, "`")
}

func isHeading(s string) bool {
	level, _ := splitHeading(s)
	return level > 0
}

// splitHeading matches a run of 1-6 '#' followed by whitespace.
func splitHeading(s string) (level int, text string) {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n < 1 || n > 6 || n == len(s) || (s[n] != ' ' && s[n] != '\t') {
		return 0, ""
	}
	return n, strings.TrimSpace(s[n:])
}

// isRule matches a line of three or more of the same rule character.
func isRule(s string) bool {
	if len(s) < 3 {
		return false
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return true
}

// splitQuote counts the leading '>' run, tolerating spaces between markers.
func splitQuote(s string) (depth int, text string) {
	i := 0
	for i < len(s) {
		switch s[i] {
		case '>':
			depth++
		case ' ', '\t':
		default:
			return depth, s[i:]
		}
		i++
	}
	return depth, ""
}

func isListItem(s string) bool {
	if len(s) >= 2 && (s[0] == '-' || s[0] == '*' || s[0] == '+') && (s[1] == ' ' || s[1] == '\t') {
		return true
	}
	ordered, _ := listMarker(s)
	return ordered
}

// listMarker reports whether the line opens an ordered item and, if so, the
// number text of its marker.
func listMarker(s string) (ordered bool, marker string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(s) && s[i] == '.' && (s[i+1] == ' ' || s[i+1] == '\t') {
		return true, s[:i]
	}
	return false, ""
}

func listText(s string) string {
	if ordered, marker := listMarker(s); ordered {
		return strings.TrimSpace(s[len(marker)+1:])
	}
	return strings.TrimSpace(s[1:])
}

// tabStop is the indent width that equals one extra level of list nesting.
const tabStop = 4

func listDepth(line string) int {
	width := 0
	for _, c := range line {
		if c == ' ' {
			width++
		} else if c == '\t' {
			width += tabStop
		} else {
			break
		}
	}
	return width / tabStop
}

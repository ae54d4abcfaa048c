package report

import "strings"

// Measurement uses a mean glyph width per font family rather than real font
// metrics: pagination has to stay a pure CPU transform with no PDF handle,
// and word-wrap at this precision is enough for page-break decisions.

func charWidth(family string, size float64) float64 {
	if family == "Courier" {
		return size * 0.60
	}
	return size * 0.50
}

func lineHeight(st Style) float64 {
	return st.Size * 1.4
}

// columnWidth is the horizontal space left for a block after margins and
// its own indent.
func columnWidth(cfg Config, st Style) float64 {
	w := cfg.PageWidth - 2*cfg.Margin - st.Indent
	if w < 1 {
		w = 1
	}
	return w
}

// wrapWords greedily packs words into lines of at most maxChars runes. A
// single word longer than a line gets a line of its own and overflows.
func wrapWords(text string, maxChars int) []string {
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len([]rune(cur))+1+len([]rune(w)) <= maxChars {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// wrapRun wraps a block's visible text for its resolved style.
func wrapRun(run InlineRun, st Style, cfg Config) []string {
	maxChars := int(columnWidth(cfg, st) / charWidth(st.Family, st.Size))
	return wrapWords(run.Text(), maxChars)
}

// ruleHeight is the vertical space a horizontal rule occupies.
const ruleHeight = 6.0

// blockHeight measures the rendered height of a block's own content,
// excluding the style's space-before and space-after.
func blockHeight(b *Block, cfg Config) float64 {
	switch b.Kind {
	case KindCodeBlock:
		n := len(b.Lines)
		if n == 0 {
			n = 1
		}
		return float64(n) * lineHeight(b.Style)
	case KindRule:
		return ruleHeight
	default:
		lines := wrapRun(b.Run, b.Style, cfg)
		n := len(lines)
		if n == 0 {
			n = 1
		}
		return float64(n) * lineHeight(b.Style)
	}
}

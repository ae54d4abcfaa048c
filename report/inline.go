package report

import "strings"

// parseInline segments a line into typed spans. Unmatched or unterminated
// markers stay in the text as literal characters, so the concatenated span
// texts always reconstruct the input minus the markers that did match.
func parseInline(s string) InlineRun {
	var run InlineRun
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			run = append(run, Span{Kind: SpanPlain, Text: plain.String()})
			plain.Reset()
		}
	}
	emit := func(kind SpanKind, text, url string) {
		flush()
		run = append(run, Span{Kind: kind, Text: text, URL: url})
	}

	for i := 0; i < len(s); {
		switch {
		case strings.HasPrefix(s[i:], "**") || strings.HasPrefix(s[i:], "__"):
			mark := s[i : i+2]
			if j := strings.Index(s[i+2:], mark); j > 0 {
				emit(SpanBold, s[i+2:i+2+j], "")
				i += j + 4
				continue
			}
			plain.WriteString(mark)
			i += 2
		case s[i] == '`':
			if j := strings.IndexByte(s[i+1:], '`'); j > 0 {
				emit(SpanCode, s[i+1:i+1+j], "")
				i += j + 2
				continue
			}
			plain.WriteByte('`')
			i++
		case s[i] == '*' || s[i] == '_':
			if j := strings.IndexByte(s[i+1:], s[i]); j > 0 {
				emit(SpanItalic, s[i+1:i+1+j], "")
				i += j + 2
				continue
			}
			plain.WriteByte(s[i])
			i++
		case s[i] == '[':
			if text, url, n := parseLinkAt(s[i:]); n > 0 {
				emit(SpanLink, text, url)
				i += n
				continue
			}
			plain.WriteByte('[')
			i++
		default:
			// Marker bytes are all ASCII, so copying byte by byte never
			// splits a multi-byte rune across spans.
			plain.WriteByte(s[i])
			i++
		}
	}
	flush()
	return run
}

// parseLinkAt matches [text](url) at the start of s and reports the number
// of bytes consumed, or 0 when s is not a link.
func parseLinkAt(s string) (text, url string, n int) {
	close := strings.IndexByte(s, ']')
	if close < 1 || close+1 >= len(s) || s[close+1] != '(' {
		return "", "", 0
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end < 0 {
		return "", "", 0
	}
	return s[1:close], s[close+2 : close+2+end], close + 2 + end + 1
}

// splitRun splits a run after the given number of words, preserving span
// kinds on both sides. The single space separating the halves is dropped.
func splitRun(run InlineRun, words int) (head, tail InlineRun) {
	remaining := words
	for i, sp := range run {
		n := len(strings.Fields(sp.Text))
		if n < remaining || (n == remaining && i == len(run)-1) {
			remaining -= n
			head = append(head, sp)
			continue
		}
		cut := wordBoundary(sp.Text, remaining)
		if cut > 0 {
			front := sp
			front.Text = strings.TrimRight(sp.Text[:cut], " ")
			head = append(head, front)
		}
		rest := sp
		rest.Text = strings.TrimLeft(sp.Text[cut:], " ")
		if rest.Text != "" {
			tail = append(tail, rest)
		}
		tail = append(tail, run[i+1:]...)
		return head, tail
	}
	return head, nil
}

// wordBoundary returns the byte offset just past the n-th word of s.
func wordBoundary(s string, n int) int {
	inWord := false
	seen := 0
	for i := 0; i < len(s); i++ {
		space := s[i] == ' ' || s[i] == '\t'
		if !space && !inWord {
			inWord = true
			seen++
		}
		if space && inWord {
			inWord = false
			if seen == n {
				return i
			}
		}
	}
	return len(s)
}

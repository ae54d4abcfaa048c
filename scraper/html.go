package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML reduces feed summaries to their text content. Feeds wrap
// summaries in markup freely; the summarizer wants plain prose. Input that
// fails to parse comes back unchanged rather than empty.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	node, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "p", "br", "div", "li":
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(node)
	return strings.Join(strings.Fields(sb.String()), " ")
}

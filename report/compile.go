package report

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Article is one record handed over by the upstream pipeline: where it came
// from, what it is, and the markdown body the summarizer produced for it.
type Article struct {
	Source  string
	Title   string
	URL     string
	Date    string
	Summary string
}

// Compiler assembles articles into a single paginated PDF report.
type Compiler struct {
	cfg Config
}

func NewCompiler(cfg Config) *Compiler {
	if cfg.TOCTitle == "" {
		cfg.TOCTitle = "Table of Contents"
	}
	return &Compiler{cfg: cfg}
}

// Compile groups the articles by source, builds one combined markdown
// document, and renders it. At least one article is required.
func (c *Compiler) Compile(articles []Article) ([]byte, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("compile: no articles to report")
	}
	cfg := c.cfg
	if cfg.Title == "" {
		cfg.Title = "Web3 News Updates Report"
	}
	if cfg.Subtitle == "" {
		cfg.Subtitle = "Generated on " + time.Now().Format("January 2, 2006 at 3:04 PM")
	}
	return render(buildMarkdown(articles), cfg)
}

// Render runs the full pass pipeline over one markdown document.
func (c *Compiler) Render(markdown string) ([]byte, error) {
	return render(markdown, c.cfg)
}

func render(markdown string, cfg Config) ([]byte, error) {
	doc := Parse(cleanText(unescape(markdown)))
	Resolve(doc, cfg)
	if err := Paginate(doc, cfg); err != nil {
		return nil, err
	}
	BuildTOC(doc, cfg)
	return Render(doc, cfg)
}

// buildMarkdown lays the articles out as one document: an H1 per source in
// first-seen order, an H2 per article with its published date and link,
// then the summary body, with a rule between sources.
func buildMarkdown(articles []Article) string {
	var sources []string
	bySource := make(map[string][]Article)
	for _, a := range articles {
		if _, ok := bySource[a.Source]; !ok {
			sources = append(sources, a.Source)
		}
		bySource[a.Source] = append(bySource[a.Source], a)
	}

	var sb strings.Builder
	for i, src := range sources {
		if i > 0 {
			sb.WriteString("---\n\n")
		}
		fmt.Fprintf(&sb, "# %s\n\n", FormatSourceName(src))
		for _, a := range bySource[src] {
			title := a.Title
			if title == "" {
				title = "No Title"
			}
			fmt.Fprintf(&sb, "## %s\n\n", title)
			if a.Date != "" {
				fmt.Fprintf(&sb, "*Published: %s*\n\n", FormatDate(a.Date))
			}
			if a.URL != "" {
				fmt.Fprintf(&sb, "[%s](%s)\n\n", a.URL, a.URL)
			}
			summary := a.Summary
			if summary == "" {
				summary = "No summary available."
			}
			sb.WriteString(strings.TrimSpace(summary))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FormatSourceName turns a feed key like "ethereum_blog" into a display
// name, with a fixed mapping for the known sources.
func FormatSourceName(source string) string {
	known := map[string]string{
		"ethereum_blog":   "Ethereum Blog",
		"arbitrum_medium": "Arbitrum Medium",
		"polygon_blog":    "Polygon Blog",
		"solana_news":     "Solana News",
		"flow_blog":       "Flow Blog",
	}
	if name, ok := known[source]; ok {
		return name
	}
	words := strings.Fields(strings.ReplaceAll(source, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// FormatDate normalizes the assorted timestamp formats feeds emit; a date
// that matches none of them passes through unchanged.
func FormatDate(date string) string {
	date = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(date), "GMT"))
	for _, layout := range []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05",
		time.RFC3339,
		"2006-01-02",
		"2 Jan 2006",
	} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return date
}

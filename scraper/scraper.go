// Package scraper fetches article records from blockchain news RSS and
// Atom feeds. A dead or malformed feed is logged and skipped; one bad
// source never aborts a run.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Item is one article record handed to the rest of the pipeline.
type Item struct {
	Source    string
	Title     string
	Link      string
	Published string
	Summary   string
}

// Source names one feed and where to fetch it. Sources are a slice, not a
// map: the report's section order follows the configured feed order, so
// fetching has to walk them in that order every run.
type Source struct {
	Name string
	URL  string
}

// DefaultSources are the feeds the report covers out of the box.
var DefaultSources = []Source{
	{Name: "ethereum_blog", URL: "https://blog.ethereum.org/feed.xml"},
	{Name: "arbitrum_medium", URL: "https://medium.com/feed/@arbitrum"},
}

// Scraper fetches and decodes the configured feeds.
type Scraper struct {
	client       *http.Client
	sources      []Source
	maxPerSource int
}

func New(sources []Source, maxPerSource int) *Scraper {
	if len(sources) == 0 {
		sources = DefaultSources
	}
	if maxPerSource <= 0 {
		maxPerSource = 5
	}
	return &Scraper{
		client:       &http.Client{Timeout: 15 * time.Second},
		sources:      sources,
		maxPerSource: maxPerSource,
	}
}

// FetchAll collects items from every source, in configured order.
// Per-source failures are logged; the returned slice holds whatever
// could be fetched.
func (s *Scraper) FetchAll(ctx context.Context) []Item {
	var items []Item
	for _, src := range s.sources {
		got, err := s.fetch(ctx, src.Name, src.URL)
		if err != nil {
			log.Printf("scraper: %s: %v", src.Name, err)
			continue
		}
		log.Printf("scraper: %s: %d article(s)", src.Name, len(got))
		items = append(items, got...)
	}
	return items
}

func (s *Scraper) fetch(ctx context.Context, name, url string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	// Several of these feeds refuse requests without browser-ish headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, application/atom+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("reading feed body: %w", err)
	}

	items, err := ParseFeed(name, body)
	if err != nil {
		return nil, err
	}
	if len(items) > s.maxPerSource {
		items = items[:s.maxPerSource]
	}
	return items, nil
}

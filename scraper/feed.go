package scraper

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// ParseFeed decodes RSS or Atom bytes into items, stripping any HTML the
// feed embeds in its summaries. Dialect detection and the namespace
// handling for extensions like Medium's content:encoded are gofeed's job.
func ParseFeed(source string, data []byte) ([]Item, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing feed for %s: %w", source, err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed for %s has no entries", source)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		summary := it.Description
		if strings.TrimSpace(summary) == "" {
			summary = it.Content
		}
		published := it.Published
		if published == "" {
			published = it.Updated
		}
		items = append(items, Item{
			Source:    source,
			Title:     strings.TrimSpace(it.Title),
			Link:      strings.TrimSpace(it.Link),
			Published: strings.TrimSpace(published),
			Summary:   StripHTML(summary),
		})
	}
	return items, nil
}

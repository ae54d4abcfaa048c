package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Ethereum Blog</title>
    <item>
      <title>Protocol Update 002</title>
      <link>https://blog.ethereum.org/protocol-update-002</link>
      <pubDate>Fri, 22 Aug 2025 00:00:00 GMT</pubDate>
      <description>&lt;p&gt;Blob scaling &lt;b&gt;groundwork&lt;/b&gt; for L2s.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://blog.ethereum.org/second</link>
      <pubDate>Thu, 21 Aug 2025 00:00:00 GMT</pubDate>
      <description>Plain description.</description>
    </item>
  </channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Arbitrum</title>
  <entry>
    <title>Nitro Notes</title>
    <link rel="alternate" href="https://medium.com/arbitrum/nitro"/>
    <published>2025-08-20T10:00:00Z</published>
    <summary>Upgrade summary text.</summary>
  </entry>
</feed>`

func TestParseFeed_RSS(t *testing.T) {
	items, err := ParseFeed("ethereum_blog", []byte(sampleRSS))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	first := items[0]
	if first.Source != "ethereum_blog" {
		t.Errorf("expected source ethereum_blog, got %q", first.Source)
	}
	if first.Title != "Protocol Update 002" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Link != "https://blog.ethereum.org/protocol-update-002" {
		t.Errorf("unexpected link %q", first.Link)
	}
	if strings.Contains(first.Summary, "<") {
		t.Errorf("summary still contains markup: %q", first.Summary)
	}
	if !strings.Contains(first.Summary, "Blob scaling groundwork") {
		t.Errorf("summary text lost: %q", first.Summary)
	}
}

func TestParseFeed_Atom(t *testing.T) {
	items, err := ParseFeed("arbitrum_medium", []byte(sampleAtom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Link != "https://medium.com/arbitrum/nitro" {
		t.Errorf("unexpected link %q", it.Link)
	}
	if it.Published != "2025-08-20T10:00:00Z" {
		t.Errorf("unexpected published %q", it.Published)
	}
	if it.Summary != "Upgrade summary text." {
		t.Errorf("unexpected summary %q", it.Summary)
	}
}

// Medium feeds put the article body in content:encoded and leave the
// description empty.
const sampleRSSEncoded = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Arbitrum</title>
    <item>
      <title>Stylus Update</title>
      <link>https://medium.com/arbitrum/stylus</link>
      <pubDate>Wed, 20 Aug 2025 09:00:00 GMT</pubDate>
      <content:encoded>&lt;p&gt;WASM contracts go &lt;em&gt;live&lt;/em&gt;.&lt;/p&gt;</content:encoded>
    </item>
  </channel>
</rss>`

func TestParseFeed_ContentEncoded(t *testing.T) {
	items, err := ParseFeed("arbitrum_medium", []byte(sampleRSSEncoded))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if !strings.Contains(items[0].Summary, "WASM contracts go live") {
		t.Errorf("content:encoded body lost: %q", items[0].Summary)
	}
	if strings.Contains(items[0].Summary, "<") {
		t.Errorf("summary still contains markup: %q", items[0].Summary)
	}
}

func TestParseFeed_Garbage(t *testing.T) {
	if _, err := ParseFeed("x", []byte("<html><body>not a feed</body></html>")); err == nil {
		t.Fatal("expected an error for non-feed input")
	}
}

// FetchAll must walk sources in configured order on every run, or the
// compiled report's section order changes between identical runs.
func TestFetchAll_SourceOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel>
  <item><title>%s post</title><link>https://example.com/%s</link>
  <description>body</description></item>
</channel></rss>`, name, name)
	}))
	defer server.Close()

	sources := []Source{
		{Name: "gamma", URL: server.URL + "/gamma"},
		{Name: "alpha", URL: server.URL + "/alpha"},
		{Name: "beta", URL: server.URL + "/beta"},
	}
	want := []string{"gamma", "alpha", "beta"}

	for run := 0; run < 5; run++ {
		items := New(sources, 5).FetchAll(context.Background())
		if len(items) != len(want) {
			t.Fatalf("run %d: expected %d items, got %d", run, len(want), len(items))
		}
		for i, it := range items {
			if it.Source != want[i] {
				t.Fatalf("run %d: item %d from %q, want %q", run, i, it.Source, want[i])
			}
		}
	}
}

func TestStripHTML(t *testing.T) {
	cases := map[string]string{
		"<p>hello <b>world</b></p>":      "hello world",
		"no markup at all":               "no markup at all",
		"<div>a</div><div>b</div>":       "a b",
		"keep &amp; decode entities":     "keep & decode entities",
		"<script>alert(1)</script>after": "after",
	}
	for in, want := range cases {
		if got := StripHTML(in); got != want {
			t.Errorf("StripHTML(%q) = %q, want %q", in, got, want)
		}
	}
}

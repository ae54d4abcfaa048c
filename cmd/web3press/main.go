// Command web3press runs the pipeline once: fetch the configured feeds,
// summarize each article with Claude, compile the PDF report, and deliver
// it by email and/or write it to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/patrickmn/go-cache"

	web3press "github.com/opd-ai/web3press"
	"github.com/opd-ai/web3press/mailer"
	"github.com/opd-ai/web3press/report"
	"github.com/opd-ai/web3press/scraper"
	"github.com/opd-ai/web3press/summarize"
)

var (
	output  = flag.String("o", "", "write the PDF to this path (overrides WEB3PRESS_OUTPUT)")
	skipAI  = flag.Bool("no-summarize", false, "use raw feed summaries instead of Claude")
	timeout = flag.Duration("timeout", 10*time.Minute, "overall run deadline")
)

func main() {
	flag.Parse()
	cfg := web3press.Load()
	if *output != "" {
		cfg.OutputPath = *output
	}
	if !*skipAI && cfg.AnthropicAPIKey == "" {
		fmt.Println("Please set ANTHROPIC_API_KEY environment variable (or pass -no-summarize)")
		os.Exit(1)
	}
	if cfg.WantsEmail() {
		if err := cfg.ValidateEmail(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	if cfg.OutputPath == "" && !cfg.WantsEmail() {
		fmt.Println("Nothing to do: set WEB3PRESS_OUTPUT or EMAIL_RECIPIENTS")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	items := scraper.New(cfg.Feeds, cfg.MaxPerSource).FetchAll(ctx)
	if len(items) == 0 {
		log.Fatal("no articles fetched from any source")
	}

	articles := make([]report.Article, 0, len(items))
	for _, it := range items {
		articles = append(articles, report.Article{
			Source:  it.Source,
			Title:   it.Title,
			URL:     it.Link,
			Date:    it.Published,
			Summary: it.Summary,
		})
	}
	if !*skipAI {
		summarizeAll(ctx, cfg.AnthropicAPIKey, articles)
	}

	pdf, err := report.NewCompiler(cfg.Page).Compile(articles)
	if err != nil {
		log.Fatalf("compiling report: %v", err)
	}
	fmt.Printf("Report compiled: %d articles, %d bytes\n", len(articles), len(pdf))

	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, pdf, 0o644); err != nil {
			log.Fatalf("writing %s: %v", cfg.OutputPath, err)
		}
		fmt.Printf("Report saved as: %s\n", cfg.OutputPath)
	}

	if cfg.WantsEmail() {
		m, err := mailer.New(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
		if err != nil {
			log.Fatalf("configuring mailer: %v", err)
		}
		subject := "Web3 News Report - " + time.Now().Format("January 2, 2006")
		body := fmt.Sprintf("Your Web3 news report with %d articles is attached.", len(articles))
		name := "web3_news_report_" + time.Now().Format("20060102_150405") + ".pdf"
		if err := m.SendReport(cfg.Recipients, subject, body, pdf, name); err != nil {
			log.Fatalf("sending report: %v", err)
		}
		fmt.Printf("Report sent to %d recipient(s)\n", len(cfg.Recipients))
	}
}

// summarizeAll rewrites each article summary through Claude. A failed call
// keeps the scraped summary; the memo avoids paying twice for an article
// that appears in more than one feed.
func summarizeAll(ctx context.Context, apiKey string, articles []report.Article) {
	client := summarize.NewClient(apiKey)
	memo := cache.New(12*time.Hour, time.Hour)
	for i := range articles {
		a := &articles[i]
		if a.Summary == "" {
			continue
		}
		if v, ok := memo.Get(a.URL); ok {
			a.Summary = v.(string)
			continue
		}
		summary, err := client.Summarize(ctx, a.Source, a.Title, a.Summary)
		if err != nil {
			log.Printf("summarize: %v (keeping feed summary)", err)
			continue
		}
		a.Summary = summary
		memo.Set(a.URL, summary, cache.DefaultExpiration)
	}
}

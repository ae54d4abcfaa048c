// Package web3press holds the boundary configuration shared by the
// commands. The environment is read here only; every inner component
// receives explicit values.
package web3press

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opd-ai/web3press/report"
	"github.com/opd-ai/web3press/scraper"
)

type Config struct {
	// Scraping. Feeds keep their configured order; the report's section
	// order follows it.
	Feeds        []scraper.Source
	MaxPerSource int

	// Summarization
	AnthropicAPIKey string

	// Delivery
	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPassword string
	Recipients    []string

	// Output
	OutputPath string
	Port       string

	Page report.Config
}

// Load reads the environment and applies defaults. Which fields are
// actually required depends on the command: the server needs no SMTP
// credentials, the one-shot run needs no port.
func Load() Config {
	cfg := Config{
		Feeds:           parseFeeds(os.Getenv("WEB3PRESS_FEEDS")),
		MaxPerSource:    envInt("WEB3PRESS_MAX_PER_SOURCE", 5),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		EmailHost:       os.Getenv("EMAIL_HOST"),
		EmailPort:       envInt("EMAIL_PORT", 587),
		EmailUser:       os.Getenv("EMAIL_USER"),
		EmailPassword:   os.Getenv("EMAIL_PASSWORD"),
		Recipients:      splitList(os.Getenv("EMAIL_RECIPIENTS")),
		OutputPath:      envOr("WEB3PRESS_OUTPUT", ""),
		Port:            envOr("PORT", "8080"),
		Page:            report.DefaultConfig(),
	}
	if len(cfg.Feeds) == 0 {
		cfg.Feeds = scraper.DefaultSources
	}
	return cfg
}

// WantsEmail reports whether delivery is configured at all.
func (c Config) WantsEmail() bool {
	return len(c.Recipients) > 0
}

// ValidateEmail checks the SMTP settings a delivery run needs.
func (c Config) ValidateEmail() error {
	if c.EmailHost == "" || c.EmailUser == "" || c.EmailPassword == "" {
		return fmt.Errorf("EMAIL_HOST, EMAIL_USER and EMAIL_PASSWORD must be set to send email")
	}
	return nil
}

// parseFeeds reads "name=url,name=url" pairs, preserving their order.
func parseFeeds(s string) []scraper.Source {
	var feeds []scraper.Source
	for _, pair := range splitList(s) {
		name, url, ok := strings.Cut(pair, "=")
		if !ok || name == "" || url == "" {
			continue
		}
		feeds = append(feeds, scraper.Source{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}
	return feeds
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

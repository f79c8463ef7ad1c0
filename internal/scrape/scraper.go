// Package scrape fetches page content and enumerates site URLs for
// faculty-directory discovery.
package scrape

import (
	"context"
)

// Page is the content of one fetched URL. Text is markdown or plain text;
// Links are absolute outbound URLs.
type Page struct {
	URL   string   `json:"url"`
	Text  string   `json:"text"`
	Links []string `json:"links"`
}

// Result holds a scraped page with its source.
type Result struct {
	Page   Page
	Source string // e.g. "firecrawl", "local_http"
}

// Scraper fetches a single URL and returns its content.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*Result, error)
	Name() string
	Supports(url string) bool
}

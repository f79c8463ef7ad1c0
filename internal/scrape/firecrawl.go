package scrape

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/faculty-cli/pkg/firecrawl"
)

// FirecrawlOptions control how pages are requested from Firecrawl.
type FirecrawlOptions struct {
	WaitMs    int
	TimeoutMs int
	// MarkdownOnly skips link extraction.
	MarkdownOnly bool
}

// FirecrawlAdapter wraps a Firecrawl client as a Scraper for single-page scrapes.
type FirecrawlAdapter struct {
	client firecrawl.Client
	opts   FirecrawlOptions
}

// NewFirecrawlAdapter creates a FirecrawlAdapter from a Firecrawl client.
func NewFirecrawlAdapter(client firecrawl.Client, opts FirecrawlOptions) *FirecrawlAdapter {
	if opts.WaitMs <= 0 {
		opts.WaitMs = 5000
	}
	if opts.TimeoutMs <= 0 {
		opts.TimeoutMs = 30000
	}
	return &FirecrawlAdapter{client: client, opts: opts}
}

// Name implements Scraper.
func (f *FirecrawlAdapter) Name() string { return "firecrawl" }

// Supports returns true. Firecrawl renders JavaScript and can attempt any URL.
func (f *FirecrawlAdapter) Supports(_ string) bool { return true }

// Scrape fetches a single URL via Firecrawl's scrape API.
func (f *FirecrawlAdapter) Scrape(ctx context.Context, targetURL string) (*Result, error) {
	formats := []string{"markdown", "links"}
	if f.opts.MarkdownOnly {
		formats = []string{"markdown"}
	}

	resp, err := f.client.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:             targetURL,
		Formats:         formats,
		OnlyMainContent: true,
		WaitFor:         f.opts.WaitMs,
		Timeout:         f.opts.TimeoutMs,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, eris.New("firecrawl: scrape not successful")
	}

	links := resp.Data.Links
	if links == nil {
		links = []string{}
	}
	return &Result{
		Page: Page{
			URL:   targetURL,
			Text:  resp.Data.Markdown,
			Links: links,
		},
		Source: "firecrawl",
	}, nil
}

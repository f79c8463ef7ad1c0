package scrape

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves page text and outbound links. Fetch never fails: every
// scraper error degrades to an empty Page.
type Fetcher struct {
	scraper Scraper
}

// NewFetcher creates a Fetcher backed by the given scraper (usually a
// FirecrawlAdapter or a Chain).
func NewFetcher(s Scraper) *Fetcher {
	return &Fetcher{scraper: s}
}

// Fetch scrapes url. On any failure it returns a Page with empty text and
// no links.
func (f *Fetcher) Fetch(ctx context.Context, url string) Page {
	empty := Page{URL: url, Links: []string{}}

	result, err := f.scraper.Scrape(ctx, url)
	if err != nil {
		zap.L().Warn("scrape: fetch failed",
			zap.String("scraper", f.scraper.Name()),
			zap.String("url", url),
			zap.Error(err),
		)
		return empty
	}
	if result == nil {
		return empty
	}

	page := result.Page
	page.URL = url
	if page.Links == nil {
		page.Links = []string{}
	}
	return page
}

// FetchAll fetches urls in sequential batches of batchSize concurrent
// fetches, waiting for each batch to finish before starting the next.
// The returned pages are in input order.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, batchSize int) []Page {
	if batchSize < 1 {
		batchSize = 1
	}

	pages := make([]Page, len(urls))
	for start := 0; start < len(urls); start += batchSize {
		end := min(start+batchSize, len(urls))

		var g errgroup.Group
		for i := start; i < end; i++ {
			g.Go(func() error {
				pages[i] = f.Fetch(ctx, urls[i])
				return nil
			})
		}
		_ = g.Wait()
	}
	return pages
}

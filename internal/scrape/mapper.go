package scrape

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/faculty-cli/pkg/firecrawl"
)

// DefaultMapQueries are the topical search phrases sent to the map API.
// The empty phrase retrieves an unfiltered URL set.
var DefaultMapQueries = []string{
	"faculty directory professors people",
	"faculty members staff department",
	"professor profile bio research",
	"",
}

// Mapper enumerates URLs on a site through several parallel map queries.
type Mapper struct {
	client  firecrawl.Client
	queries []string
	limit   int
}

// NewMapper creates a Mapper. A non-positive limit uses 5000; nil queries
// use DefaultMapQueries.
func NewMapper(client firecrawl.Client, limit int, queries []string) *Mapper {
	if limit <= 0 {
		limit = 5000
	}
	if queries == nil {
		queries = DefaultMapQueries
	}
	return &Mapper{client: client, queries: queries, limit: limit}
}

// Map runs every query in parallel and returns the union of the discovered
// links, deduplicated and ordered by query then by position. A failing query
// is logged and contributes nothing; Map never returns an error.
func (m *Mapper) Map(ctx context.Context, seedURL string) []string {
	results := make([][]string, len(m.queries))

	var g errgroup.Group
	for i, q := range m.queries {
		g.Go(func() error {
			resp, err := m.client.Map(ctx, firecrawl.MapRequest{
				URL:               seedURL,
				Search:            q,
				Limit:             m.limit,
				IncludeSubdomains: true,
			})
			if err != nil {
				zap.L().Warn("scrape: map query failed",
					zap.String("url", seedURL),
					zap.String("query", q),
					zap.Error(err),
				)
				return nil
			}
			if !resp.Success {
				zap.L().Warn("scrape: map query unsuccessful",
					zap.String("url", seedURL),
					zap.String("query", q),
				)
				return nil
			}
			results[i] = resp.Links
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	links := []string{}
	for _, batch := range results {
		for _, l := range batch {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}

	zap.L().Debug("scrape: map complete",
		zap.String("url", seedURL),
		zap.Int("links", len(links)),
	)
	return links
}

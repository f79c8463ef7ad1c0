package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/faculty-cli/internal/config"
	"github.com/sells-group/faculty-cli/internal/extract"
	"github.com/sells-group/faculty-cli/internal/monitoring"
	"github.com/sells-group/faculty-cli/internal/pipeline"
	"github.com/sells-group/faculty-cli/internal/research"
	"github.com/sells-group/faculty-cli/internal/resilience"
	"github.com/sells-group/faculty-cli/internal/scrape"
	anthropicpkg "github.com/sells-group/faculty-cli/pkg/anthropic"
	"github.com/sells-group/faculty-cli/pkg/firecrawl"
	"github.com/sells-group/faculty-cli/pkg/gemini"
)

// profileWaitMs is the render wait used when fetching a single profile page.
const profileWaitMs = 2000

// appEnv holds the clients and services built from config.
type appEnv struct {
	Pipeline *pipeline.Pipeline
	Analyzer *research.Analyzer
}

// initEnv builds every client and service from c. metrics may be nil.
func initEnv(ctx context.Context, c *config.Config, metrics *monitoring.Metrics) (*appEnv, error) {
	if err := c.CheckCredentials(); err != nil {
		return nil, err
	}

	fc := firecrawl.NewClient(c.Firecrawl.Key,
		firecrawl.WithBaseURL(c.Firecrawl.BaseURL),
		firecrawl.WithRateLimit(c.Firecrawl.RatePerSec),
	)

	completer, err := newCompleter(ctx, c)
	if err != nil {
		return nil, err
	}

	retry := resilience.FromRetryConfig(
		c.Pipeline.RetryAttempts,
		c.Pipeline.RetryBaseMs,
		c.Pipeline.RetryMaxMs,
		c.Pipeline.CallTimeoutSecs,
	)
	retry.OnRetry = metrics.CompletionRetry

	ex := extract.New(completer, extract.Options{
		MaxTextChars: c.Pipeline.MaxTextChars,
		MaxLinks:     c.Pipeline.MaxLinks,
		MaxURLs:      c.Pipeline.ProfileBatchSize,
		Retry:        retry,
	})

	var pageScraper scrape.Scraper = scrape.NewFirecrawlAdapter(fc, scrape.FirecrawlOptions{
		WaitMs:    c.Firecrawl.WaitMs,
		TimeoutMs: c.Firecrawl.TimeoutMs,
	})
	if c.Scrape.LocalFallback {
		pageScraper = scrape.NewChain(nil, pageScraper, scrape.NewLocalScraper(c.Scrape.UserAgent))
	}

	p := pipeline.New(
		scrape.NewMapper(fc, c.Firecrawl.MapLimit, nil),
		scrape.NewFetcher(pageScraper),
		ex,
		pipeline.OptionsFromConfig(c.Pipeline),
		metrics,
	)

	profileScraper := scrape.NewFirecrawlAdapter(fc, scrape.FirecrawlOptions{
		WaitMs:       profileWaitMs,
		TimeoutMs:    c.Firecrawl.TimeoutMs,
		MarkdownOnly: true,
	})

	return &appEnv{
		Pipeline: p,
		Analyzer: research.NewAnalyzer(profileScraper, ex),
	}, nil
}

func newCompleter(ctx context.Context, c *config.Config) (extract.Completer, error) {
	switch c.Completion.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, c.Gemini.Key)
		if err != nil {
			return nil, eris.Wrap(err, "init gemini client")
		}
		return extract.NewGeminiCompleter(client, c.Gemini.Model), nil
	case config.ProviderAnthropic, "":
		client := anthropicpkg.NewClient(c.Anthropic.Key)
		return extract.NewAnthropicCompleter(client, c.Anthropic.Model, c.Anthropic.MaxTokens), nil
	default:
		return nil, eris.Errorf("unknown completion provider %q", c.Completion.Provider)
	}
}

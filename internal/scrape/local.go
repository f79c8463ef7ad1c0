package scrape

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/faculty-cli/internal/resilience"
)

const maxLocalBody = 2 << 20

// LocalScraper fetches HTML via net/http, isolates the main content with
// readability, and converts it to markdown. It cannot run JavaScript, so it
// only serves as a fallback behind Firecrawl.
type LocalScraper struct {
	client    *http.Client
	userAgent string
	retry     resilience.RetryConfig
}

// NewLocalScraper creates a LocalScraper with sensible defaults.
func NewLocalScraper(userAgent string) *LocalScraper {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; faculty-cli/1.0)"
	}
	return &LocalScraper{
		userAgent: userAgent,
		retry: resilience.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: 500 * time.Millisecond,
			MaxBackoff:     2 * time.Second,
			Multiplier:     2.0,
			OnRetry:        resilience.RetryLogger("local_http", "fetch"),
		},
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (l *LocalScraper) Name() string { return "local_http" }

// Supports accepts http and https URLs only.
func (l *LocalScraper) Supports(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// Scrape fetches a URL, detects blocks, and converts the main content to markdown.
func (l *LocalScraper) Scrape(ctx context.Context, targetURL string) (*Result, error) {
	base, err := url.Parse(targetURL)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: parse url")
	}

	var body []byte
	err = resilience.Do(ctx, l.retry, func(ctx context.Context) error {
		var ferr error
		body, ferr = l.fetch(ctx, targetURL)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if len(body) < 100 {
		return nil, eris.New("local_http: empty page")
	}

	links, err := extractLinks(body, base)
	if err != nil {
		return nil, err
	}

	return &Result{
		Page: Page{
			URL:   targetURL,
			Text:  mainContentMarkdown(body, base),
			Links: links,
		},
		Source: "local_http",
	}, nil
}

// fetch performs one GET. 429 and 5xx responses come back as transient
// errors so the caller's retry loop picks them up; blocks never do.
func (l *LocalScraper) fetch(ctx context.Context, targetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: create request")
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "local_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLocalBody))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: read body")
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, eris.Errorf("local_http: blocked (%s)", blockType)
	}

	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return nil, resilience.NewTransientError(eris.Errorf("local_http: status %d", resp.StatusCode), resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("local_http: status %d", resp.StatusCode)
	}
	return body, nil
}

// mainContentMarkdown isolates the readable part of the page and renders it
// as markdown. Directory pages often confuse readability, so the full body is
// used when it finds nothing.
func mainContentMarkdown(body []byte, base *url.URL) string {
	content := string(body)
	article, err := readability.FromReader(bytes.NewReader(body), base)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		content = article.Content
	}

	conv := md.NewConverter(base.Scheme+"://"+base.Host, true, nil)
	conv.Remove("script", "style", "nav", "footer")
	text, err := conv.ConvertString(content)
	if err != nil {
		zap.L().Debug("local_http: markdown conversion failed", zap.String("url", base.String()), zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

// extractLinks returns the absolute http(s) targets of every anchor in body,
// deduplicated in document order. Fragments are dropped.
func extractLinks(body []byte, base *url.URL) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "local_http: parse html")
	}

	seen := make(map[string]struct{})
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""
		u := abs.String()
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		links = append(links, u)
	})
	return links, nil
}

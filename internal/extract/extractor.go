// Package extract turns page text or profile URL lists into faculty records
// using a text completion service.
package extract

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/resilience"
)

var (
	// ErrRateLimited is returned when the completion service kept answering
	// 429 after every retry.
	ErrRateLimited = eris.New("completion service rate limited after retries")

	// ErrQuotaExhausted is returned when the completion account is out of
	// credits. It is never retried.
	ErrQuotaExhausted = eris.New("completion service quota exhausted")
)

// Options tunes an Extractor.
type Options struct {
	MaxTextChars int
	MaxLinks     int
	MaxURLs      int
	Retry        resilience.RetryConfig
}

// DefaultOptions returns the caps and retry policy used by the pipeline.
func DefaultOptions() Options {
	return Options{
		MaxTextChars: 50000,
		MaxLinks:     300,
		MaxURLs:      100,
		Retry:        resilience.DefaultRetryConfig(),
	}
}

// Extractor runs extraction prompts against a Completer.
type Extractor struct {
	completer Completer
	opts      Options
}

// New creates an Extractor. Zero-valued caps fall back to DefaultOptions.
func New(c Completer, opts Options) *Extractor {
	def := DefaultOptions()
	if opts.MaxTextChars <= 0 {
		opts.MaxTextChars = def.MaxTextChars
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = def.MaxLinks
	}
	if opts.MaxURLs <= 0 {
		opts.MaxURLs = def.MaxURLs
	}
	if opts.Retry.MaxAttempts <= 0 {
		hook := opts.Retry.OnRetry
		opts.Retry = def.Retry
		opts.Retry.OnRetry = hook
	}
	opts.Retry.ShouldRetry = resilience.IsRateLimited
	opts.Retry.OnRetry = resilience.ChainOnRetry(resilience.RetryLogger("completion", "extract"), opts.Retry.OnRetry)
	return &Extractor{completer: c, opts: opts}
}

// Run dispatches task to the matching extraction operation.
func (e *Extractor) Run(ctx context.Context, task model.ExtractionTask, groupLabel string) ([]model.Record, error) {
	switch task.Kind {
	case model.TaskFromURLList:
		return e.ExtractFromURLList(ctx, task.URLs, groupLabel)
	case model.TaskFromPageText:
		return e.ExtractFromText(ctx, task.Text, task.Links, task.URL, groupLabel)
	default:
		return nil, eris.Errorf("extract: unknown task kind %q", task.Kind)
	}
}

// ExtractFromText extracts every faculty member named in a listing page.
func (e *Extractor) ExtractFromText(ctx context.Context, text string, links []string, pageURL, groupLabel string) ([]model.Record, error) {
	text = truncateRunes(text, e.opts.MaxTextChars)
	if len(links) > e.opts.MaxLinks {
		links = links[:e.opts.MaxLinks]
	}
	if links == nil {
		links = []string{}
	}
	return e.complete(ctx, "fromPageText", pageTextSystem, pageTextPrompt(pageURL, text, links), groupLabel)
}

// ExtractFromURLList infers records from profile URL slugs.
func (e *Extractor) ExtractFromURLList(ctx context.Context, urls []string, groupLabel string) ([]model.Record, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	if len(urls) > e.opts.MaxURLs {
		urls = urls[:e.opts.MaxURLs]
	}
	return e.complete(ctx, "fromURLList", urlListSystem, urlListPrompt(urls), groupLabel)
}

// Complete sends one prompt with the rate-limit retry policy. Exhausted
// rate limits return ErrRateLimited and exhausted credits return
// ErrQuotaExhausted; other failures are returned wrapped.
func (e *Extractor) Complete(ctx context.Context, system, user string) (string, error) {
	reply, err := resilience.DoVal(ctx, e.opts.Retry, func(ctx context.Context) (string, error) {
		return e.completer.Complete(ctx, system, user)
	})
	switch {
	case err == nil:
		return reply, nil
	case IsQuotaExhausted(err):
		zap.L().Error("extract: completion quota exhausted", zap.Error(err))
		return "", ErrQuotaExhausted
	case resilience.IsRateLimited(err):
		zap.L().Error("extract: completion rate limited after retries", zap.Error(err))
		return "", ErrRateLimited
	default:
		return "", eris.Wrap(err, "extract: completion")
	}
}

func (e *Extractor) complete(ctx context.Context, kind, system, user, groupLabel string) ([]model.Record, error) {
	log := zap.L().With(zap.String("component", "extract"), zap.String("kind", kind))
	start := time.Now()

	reply, err := e.Complete(ctx, system, user)
	if err != nil {
		if errors.Is(err, ErrQuotaExhausted) || errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		log.Warn("completion failed, returning no records",
			zap.Int("status", resilience.StatusOf(err)),
			zap.Error(err),
		)
		return nil, nil
	}

	records, ok := parseRecords(reply, groupLabel)
	if !ok {
		log.Warn("completion reply had no JSON array", zap.Int("reply_len", len(reply)))
		return nil, nil
	}

	log.Debug("extraction complete",
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

// IsQuotaExhausted reports whether err means the completion account has no
// credits left.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}
	return resilience.StatusOf(err) == http.StatusPaymentRequired
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

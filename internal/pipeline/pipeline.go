// Package pipeline runs one faculty-directory discovery: map the site, fetch
// the seed page, classify links, extract records and merge them.
package pipeline

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/faculty-cli/internal/config"
	"github.com/sells-group/faculty-cli/internal/discovery"
	"github.com/sells-group/faculty-cli/internal/merge"
	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/monitoring"
	"github.com/sells-group/faculty-cli/internal/scrape"
)

// Mapper enumerates URLs on the seed's site.
type Mapper interface {
	Map(ctx context.Context, seedURL string) []string
}

// Fetcher retrieves page text and links. Failures yield empty pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) scrape.Page
	FetchAll(ctx context.Context, urls []string, batchSize int) []scrape.Page
}

// Extractor runs one extraction task.
type Extractor interface {
	Run(ctx context.Context, task model.ExtractionTask, groupLabel string) ([]model.Record, error)
}

// Options bounds the work done by one run.
type Options struct {
	Concurrency      int
	ProfileBatchSize int
	MaxListingPages  int
	MinTextChars     int
}

// DefaultOptions returns the defaults used when config leaves a field unset.
func DefaultOptions() Options {
	return Options{
		Concurrency:      3,
		ProfileBatchSize: 100,
		MaxListingPages:  10,
		MinTextChars:     200,
	}
}

// OptionsFromConfig converts pipeline config to Options.
func OptionsFromConfig(cfg config.PipelineConfig) Options {
	return Options{
		Concurrency:      cfg.Concurrency,
		ProfileBatchSize: cfg.ProfileBatchSize,
		MaxListingPages:  cfg.MaxListingPages,
		MinTextChars:     cfg.MinTextChars,
	}
}

// Pipeline orchestrates discovery runs. It holds no per-run state and is
// safe for concurrent use.
type Pipeline struct {
	mapper    Mapper
	fetcher   Fetcher
	extractor Extractor
	opts      Options
	metrics   *monitoring.Metrics
}

// New creates a Pipeline. metrics may be nil.
func New(m Mapper, f Fetcher, x Extractor, opts Options, metrics *monitoring.Metrics) *Pipeline {
	def := DefaultOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = def.Concurrency
	}
	if opts.ProfileBatchSize <= 0 {
		opts.ProfileBatchSize = def.ProfileBatchSize
	}
	if opts.MaxListingPages < 0 {
		opts.MaxListingPages = 0
	}
	if opts.MinTextChars <= 0 {
		opts.MinTextChars = def.MinTextChars
	}
	return &Pipeline{
		mapper:    m,
		fetcher:   f,
		extractor: x,
		opts:      opts,
		metrics:   metrics,
	}
}

// run is the state owned by a single Run call.
type run struct {
	id     string
	seed   string
	group  string
	log    *zap.Logger
	phases []model.PhaseResult

	seedPage     scrape.Page
	links        []string
	class        discovery.Classification
	records      []model.Record
	pagesScraped int
}

// Run executes the discovery pipeline for one request. Request-level
// failures are returned as *model.RequestError.
func (p *Pipeline) Run(ctx context.Context, req model.ScrapeRequest) (*model.ScrapeResponse, error) {
	seed, err := validateSeed(req.FacultyURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	r := &run{
		id:    uuid.NewString(),
		seed:  seed,
		group: req.GroupLabel,
	}
	r.log = zap.L().With(
		zap.String("run_id", r.id),
		zap.String("url", seed),
		zap.String("group", req.GroupLabel),
	)
	r.log.Info("pipeline: starting discovery")

	status := model.RunStatusMapping
	defer func() {
		p.metrics.ObserveRun(string(status), time.Since(start))
	}()

	r.trackPhase(string(model.RunStatusMapping), func() (map[string]any, error) {
		p.mapPhase(ctx, r)
		return map[string]any{
			"seed_chars": len(r.seedPage.Text),
			"links":      len(r.links),
		}, nil
	})

	status = model.RunStatusClassifying
	r.trackPhase(string(model.RunStatusClassifying), func() (map[string]any, error) {
		r.class = discovery.Classify(seed, r.links)
		return map[string]any{
			"profiles": len(r.class.Profiles),
			"listings": len(r.class.Listings),
		}, nil
	})

	status = model.RunStatusExtracting
	if err := r.trackPhase(string(model.RunStatusExtracting), func() (map[string]any, error) {
		if err := p.extractPhase(ctx, r); err != nil {
			return nil, err
		}
		return map[string]any{"records": len(r.records)}, nil
	}); err != nil {
		status = model.RunStatusFailed
		return nil, err
	}

	status = model.RunStatusMerging
	var merged []model.Record
	r.trackPhase(string(model.RunStatusMerging), func() (map[string]any, error) {
		merged = merge.Merge(r.records)
		return map[string]any{"unique": len(merged)}, nil
	})

	status = model.RunStatusDone
	resp := Assemble(merged, r.pagesScraped, len(r.class.Profiles), r.id)
	resp.Phases = r.phases

	r.log.Info("pipeline: discovery complete",
		zap.Int("total", *resp.Total),
		zap.Int("research_active", *resp.ResearchActive),
		zap.Int("pages_scraped", r.pagesScraped),
		zap.Int("profile_urls", len(r.class.Profiles)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// mapPhase runs the site map and the seed fetch concurrently and unions
// their links, seed links first.
func (p *Pipeline) mapPhase(ctx context.Context, r *run) {
	var mapped []string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		mapped = p.mapper.Map(gCtx, r.seed)
		return nil
	})
	g.Go(func() error {
		r.seedPage = p.fetcher.Fetch(gCtx, r.seed)
		return nil
	})
	_ = g.Wait()

	r.links = unionLinks(r.seedPage.Links, mapped)
}

func (r *run) trackPhase(name string, fn func() (map[string]any, error)) error {
	start := time.Now()
	meta, err := fn()
	duration := time.Since(start).Milliseconds()

	phase := model.PhaseResult{
		Name:     name,
		Status:   model.PhaseStatusComplete,
		Duration: duration,
		Metadata: meta,
	}
	if err != nil {
		phase.Status = model.PhaseStatusFailed
		phase.Error = err.Error()
		r.log.Error("pipeline: phase failed",
			zap.String("phase", name),
			zap.Int64("duration_ms", duration),
			zap.Error(err),
		)
	} else {
		r.log.Info("pipeline: phase complete",
			zap.String("phase", name),
			zap.Int64("duration_ms", duration),
			zap.Any("metadata", meta),
		)
	}
	r.phases = append(r.phases, phase)
	return err
}

func validateSeed(raw string) (string, error) {
	seed := strings.TrimSpace(raw)
	if seed == "" {
		return "", badRequest(MsgURLRequired)
	}
	u, err := url.Parse(seed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", badRequest(MsgURLInvalid)
	}
	return seed, nil
}

func unionLinks(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, l := range list {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out
}

// cancelled wraps a caller cancellation observed between batches.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "pipeline: run cancelled")
	}
	return nil
}

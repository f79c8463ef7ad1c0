package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/faculty-cli/internal/extract"
	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/monitoring"
)

// extractPhase runs the seed-page strategy, then the profile-URL and
// listing-page strategies, collecting every record in r.records.
func (p *Pipeline) extractPhase(ctx context.Context, r *run) error {
	r.pagesScraped = 1

	// Seed page text. Its rate-limit and quota failures fail the run.
	if len(r.seedPage.Text) > p.opts.MinTextChars {
		task := model.NewPageTextTask(model.StrategySeedPage, r.seed, r.seedPage.Text, r.seedPage.Links)
		recs, err := p.extractor.Run(ctx, task, r.group)
		p.observe(task, recs, err)
		switch {
		case errors.Is(err, extract.ErrRateLimited):
			return errRateLimited
		case errors.Is(err, extract.ErrQuotaExhausted):
			return errQuota
		case err != nil:
			r.log.Warn("pipeline: seed extraction failed", zap.Error(err))
		}
		r.records = append(r.records, recs...)
		r.log.Info("pipeline: seed page extracted", zap.Int("records", len(recs)))
	} else {
		r.log.Info("pipeline: seed page too short, skipping",
			zap.Int("chars", len(r.seedPage.Text)),
		)
	}

	if err := cancelled(ctx); err != nil {
		return err
	}

	tasks := p.profileTasks(r.class.Profiles)
	listingTasks, fetched := p.listingTasks(ctx, r)
	r.pagesScraped += fetched
	tasks = append(tasks, listingTasks...)

	return p.runBatches(ctx, r, tasks)
}

// profileTasks chunks profile URLs into URL-list tasks.
func (p *Pipeline) profileTasks(profiles []string) []model.ExtractionTask {
	var tasks []model.ExtractionTask
	for i := 0; i < len(profiles); i += p.opts.ProfileBatchSize {
		end := min(i+p.opts.ProfileBatchSize, len(profiles))
		tasks = append(tasks, model.NewURLListTask(profiles[i:end]))
	}
	return tasks
}

// listingTasks fetches the first MaxListingPages secondary listings and
// builds page-text tasks for those with enough text. It returns the number
// of pages fetched.
func (p *Pipeline) listingTasks(ctx context.Context, r *run) ([]model.ExtractionTask, int) {
	listings := r.class.Listings
	if len(listings) > p.opts.MaxListingPages {
		listings = listings[:p.opts.MaxListingPages]
	}
	if len(listings) == 0 {
		return nil, 0
	}

	pages := p.fetcher.FetchAll(ctx, listings, p.opts.Concurrency)

	var tasks []model.ExtractionTask
	for _, page := range pages {
		if len(page.Text) <= p.opts.MinTextChars {
			r.log.Debug("pipeline: listing page too short, skipping",
				zap.String("page", page.URL),
				zap.Int("chars", len(page.Text)),
			)
			continue
		}
		tasks = append(tasks, model.NewPageTextTask(model.StrategyListing, page.URL, page.Text, page.Links))
	}
	return tasks, len(pages)
}

// runBatches runs tasks in sequential batches of Concurrency calls. A
// rate-limited task contributes nothing; quota exhaustion stops the run.
func (p *Pipeline) runBatches(ctx context.Context, r *run, tasks []model.ExtractionTask) error {
	for start := 0; start < len(tasks); start += p.opts.Concurrency {
		if err := cancelled(ctx); err != nil {
			return err
		}

		batch := tasks[start:min(start+p.opts.Concurrency, len(tasks))]
		results := make([][]model.Record, len(batch))
		errs := make([]error, len(batch))

		var g errgroup.Group
		for i, task := range batch {
			g.Go(func() error {
				results[i], errs[i] = p.extractor.Run(ctx, task, r.group)
				return nil
			})
		}
		_ = g.Wait()

		quota := false
		for i, task := range batch {
			p.observe(task, results[i], errs[i])
			switch {
			case errors.Is(errs[i], extract.ErrQuotaExhausted):
				quota = true
			case errs[i] != nil:
				r.log.Warn("pipeline: extraction task failed",
					zap.String("strategy", string(task.Strategy)),
					zap.String("page", task.URL),
					zap.Error(errs[i]),
				)
			}
			r.records = append(r.records, results[i]...)
		}
		if quota {
			return errQuota
		}
	}
	return nil
}

func (p *Pipeline) observe(task model.ExtractionTask, recs []model.Record, err error) {
	outcome := monitoring.OutcomeOK
	switch {
	case errors.Is(err, extract.ErrRateLimited):
		outcome = monitoring.OutcomeRateLimited
	case errors.Is(err, extract.ErrQuotaExhausted):
		outcome = monitoring.OutcomeQuota
	case err != nil:
		outcome = monitoring.OutcomeError
	case len(recs) == 0:
		outcome = monitoring.OutcomeEmpty
	}
	p.metrics.ObserveExtraction(string(task.Strategy), outcome)
}

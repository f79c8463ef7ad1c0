package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/scrape"
)

type mockMapper struct {
	mock.Mock
}

func (m *mockMapper) Map(ctx context.Context, seedURL string) []string {
	args := m.Called(ctx, seedURL)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// fakeFetcher serves pages from a map; unknown URLs yield empty pages.
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]scrape.Page
	calls  []string
	inBulk []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) scrape.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if p, ok := f.pages[url]; ok {
		p.URL = url
		return p
	}
	return scrape.Page{URL: url, Links: []string{}}
}

func (f *fakeFetcher) FetchAll(ctx context.Context, urls []string, _ int) []scrape.Page {
	f.mu.Lock()
	f.inBulk = append(f.inBulk, urls...)
	f.mu.Unlock()
	out := make([]scrape.Page, len(urls))
	for i, u := range urls {
		out[i] = f.Fetch(ctx, u)
	}
	return out
}

func (f *fakeFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeExtractor answers tasks with a per-task function and tracks peak
// concurrency.
type fakeExtractor struct {
	mu       sync.Mutex
	tasks    []model.ExtractionTask
	answer   func(model.ExtractionTask) ([]model.Record, error)
	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeExtractor) Run(_ context.Context, task model.ExtractionTask, groupLabel string) ([]model.Record, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	if f.answer == nil {
		return nil, nil
	}
	recs, err := f.answer(task)
	for i := range recs {
		recs[i].GroupLabel = groupLabel
	}
	return recs, err
}

func (f *fakeExtractor) count(strategy model.Strategy) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tasks {
		if t.Strategy == strategy {
			n++
		}
	}
	return n
}

func (f *fakeExtractor) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

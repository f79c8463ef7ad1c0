package scrape

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	s := &mockScraper{
		name: "s", supports: true,
		result: &Result{Page: Page{URL: "other", Text: "text"}},
	}
	f := NewFetcher(s)

	page := f.Fetch(context.Background(), "https://cs.example.edu/people")
	assert.Equal(t, "https://cs.example.edu/people", page.URL)
	assert.Equal(t, "text", page.Text)
	assert.NotNil(t, page.Links)
}

func TestFetcher_Fetch_DegradesToEmpty(t *testing.T) {
	f := NewFetcher(&mockScraper{name: "s", supports: true, err: errors.New("HTTP 500")})

	page := f.Fetch(context.Background(), "https://cs.example.edu/people")
	assert.Equal(t, "https://cs.example.edu/people", page.URL)
	assert.Empty(t, page.Text)
	assert.Equal(t, []string{}, page.Links)
}

func TestFetcher_Fetch_NilResult(t *testing.T) {
	f := NewFetcher(&mockScraper{name: "s", supports: true})
	page := f.Fetch(context.Background(), "https://cs.example.edu")
	assert.Empty(t, page.Text)
	assert.Equal(t, []string{}, page.Links)
}

// slowScraper records peak concurrency.
type slowScraper struct {
	mu      sync.Mutex
	active  int
	peak    int
	started atomic.Int32
}

func (s *slowScraper) Name() string           { return "slow" }
func (s *slowScraper) Supports(_ string) bool { return true }
func (s *slowScraper) Scrape(_ context.Context, u string) (*Result, error) {
	s.started.Add(1)
	s.mu.Lock()
	s.active++
	if s.active > s.peak {
		s.peak = s.active
	}
	s.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return &Result{Page: Page{Text: "page " + u}}, nil
}

func TestFetcher_FetchAll_BatchesAndOrder(t *testing.T) {
	s := &slowScraper{}
	f := NewFetcher(s)

	urls := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	pages := f.FetchAll(context.Background(), urls, 3)

	assert.Len(t, pages, 7)
	for i, p := range pages {
		assert.Equal(t, urls[i], p.URL)
		assert.Equal(t, "page "+urls[i], p.Text)
	}
	assert.LessOrEqual(t, s.peak, 3)
	assert.Equal(t, int32(7), s.started.Load())
}

func TestFetcher_FetchAll_Empty(t *testing.T) {
	f := NewFetcher(&mockScraper{name: "s", supports: true})
	assert.Empty(t, f.FetchAll(context.Background(), nil, 0))
}

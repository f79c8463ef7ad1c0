package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathMatcher_IsExcluded(t *testing.T) {
	t.Parallel()
	m := NewPathMatcher([]string{"/events/*", "/news/*", "*.pdf"})

	tests := []struct {
		name     string
		url      string
		excluded bool
	}{
		{"events listing", "https://cs.example.edu/events/seminar", true},
		{"events root", "https://cs.example.edu/events", true},
		{"news deep path", "https://cs.example.edu/news/2024/01/award", true},
		{"root pdf", "https://cs.example.edu/handbook.pdf", true},
		{"nested pdf", "https://cs.example.edu/people/cv/jane-doe.pdf", true},
		{"faculty listing", "https://cs.example.edu/people/faculty/", false},
		{"profile", "https://cs.example.edu/people/jane-doe", false},
		{"homepage", "https://cs.example.edu/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.excluded, m.IsExcluded(tt.url))
		})
	}
}

func TestPathMatcher_DefaultPatterns(t *testing.T) {
	m := NewPathMatcher(nil)

	assert.True(t, m.IsExcluded("https://cs.example.edu/files/syllabus.PDF"))
	assert.True(t, m.IsExcluded("https://cs.example.edu/img/headshot.jpg"))
	assert.True(t, m.IsExcluded("https://cs.example.edu/docs/form.docx"))
	assert.False(t, m.IsExcluded("https://cs.example.edu/people/faculty"))
	assert.False(t, m.IsExcluded("https://cs.example.edu/directory?page=2"))
	assert.NotEmpty(t, m.Patterns())
}

func TestPathMatcher_UnparseableURL(t *testing.T) {
	m := NewPathMatcher(nil)
	assert.True(t, m.IsExcluded("http://[::1]:namedport"))
}

package discovery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/faculty-cli/internal/model"
)

const seed = "https://cis.example.edu/people/faculty/"

func TestFindProfileURLs(t *testing.T) {
	t.Parallel()

	links := []string{
		"https://cis.example.edu/people/jane-doe/",
		"https://cis.example.edu/people/jane-doe", // duplicate after normalization
		"https://cis.example.edu/people/john-smith/",
		"/faculty/mary-jones",                       // relative
		"https://cis.example.edu/directory?id=42",   // query rule
		"https://cis.example.edu/view?profile=abc",  // query rule
		"https://other.example.edu/people/eve-ng/",  // cross-host
		"https://cis.example.edu/news/people/x/",    // content section
		"https://cis.example.edu/people/cv.pdf",     // asset
		"https://cis.example.edu/people/index.html", // index page
		"https://cis.example.edu/people/faculty/",   // seed
		"https://cis.example.edu/people/staff/",     // listing keyword slug
		"https://cis.example.edu/faculty-research/faculty-directory/",
		"https://cis.example.edu/faculty-research/faculty-directory/alan-turing/",
		"mailto:jane@example.edu",
		"https://cis.example.edu/people/jane-doe/publications/",
	}

	got := FindProfileURLs(seed, links)
	assert.Equal(t, []string{
		"https://cis.example.edu/people/jane-doe",
		"https://cis.example.edu/people/john-smith",
		"https://cis.example.edu/faculty/mary-jones",
		"https://cis.example.edu/directory?id=42",
		"https://cis.example.edu/view?profile=abc",
		"https://cis.example.edu/faculty-research/faculty-directory/alan-turing",
	}, got)
}

func TestFindProfileURLs_InvalidSeed(t *testing.T) {
	t.Parallel()
	assert.Empty(t, FindProfileURLs("://bad", []string{"https://cis.example.edu/people/jane-doe"}))
}

func TestFindSecondaryListingPages(t *testing.T) {
	t.Parallel()

	links := []string{
		seed,
		"https://cis.example.edu/people/faculty",            // same normalized path as seed
		"https://cis.example.edu/people/faculty/index.html", // same normalized path as seed
		"https://cis.example.edu/people/faculty/?page=2",    // paginated seed
		"https://cis.example.edu/people/faculty?p=3",        // paginated seed
		"https://cis.example.edu/directory/?page=2",
		"https://cis.example.edu/people/jane-doe/", // profile
		"https://cis.example.edu/people/staff/",
		"https://cis.example.edu/events/page/3",
		"https://cis.example.edu/news?start=20",
		"https://cis.example.edu/about/",
		"https://cis.example.edu/people/staff/",                  // duplicate
		"https://cis.example.edu/a/b/c/d/e/faculty-list",         // depth 6
		"https://other.example.edu/faculty/",                     // cross-host
		"https://cis.example.edu/department/computer-science/",
	}

	got := FindSecondaryListingPages(seed, links)
	assert.Equal(t, []string{
		"https://cis.example.edu/directory/?page=2",
		"https://cis.example.edu/people/staff/",
		"https://cis.example.edu/events/page/3",
		"https://cis.example.edu/news?start=20",
		"https://cis.example.edu/department/computer-science/",
	}, got)
}

func TestFindSecondaryListingPages_Cap(t *testing.T) {
	t.Parallel()

	var links []string
	for i := 0; i < 50; i++ {
		links = append(links, fmt.Sprintf("https://cis.example.edu/directory?page=%d", i))
	}
	got := FindSecondaryListingPages(seed, links)
	assert.Len(t, got, MaxListingPages)
	assert.Equal(t, links[0], got[0])
}

func TestClassify_Exclusive(t *testing.T) {
	t.Parallel()

	links := []string{
		"https://cis.example.edu/people/jane-doe/",     // profile + keyword
		"https://cis.example.edu/people/john-smith",    // profile + keyword
		"https://cis.example.edu/people/staff/",        // listing only
		"https://cis.example.edu/people/faculty?p=2",   // seed pagination
		"https://cis.example.edu/directory?p=2",        // listing only
		"https://cis.example.edu/profile/x?page=2",     // profile path, also pagination
		"https://cis.example.edu/news/2024/01/story",   // neither
		"https://elsewhere.example.edu/people/jane-doe", // cross-host
	}

	c := Classify(seed, links)

	assert.ElementsMatch(t, []string{
		"https://cis.example.edu/people/jane-doe",
		"https://cis.example.edu/people/john-smith",
		"https://cis.example.edu/profile/x?page=2",
	}, c.Profiles)
	assert.Equal(t, []string{
		"https://cis.example.edu/people/staff/",
		"https://cis.example.edu/directory?p=2",
	}, c.Listings)

	profiles := make(map[string]bool)
	for _, p := range c.Profiles {
		profiles[p] = true
	}
	for _, l := range c.Listings {
		key, _ := profileKey(seed, l)
		assert.False(t, profiles[key], "url in both sets: %s", l)
	}
}

func TestFindFunctions_Disjoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		links []string
	}{
		{"profile under keyword path", []string{"https://cis.example.edu/people/jane-doe"}},
		{"mixed", []string{
			"https://cis.example.edu/people/jane-doe/",
			"/faculty/john-smith",
			"https://cis.example.edu/staff/bob-lee?page=2",
			"https://cis.example.edu/people/staff/",
			"https://cis.example.edu/department/",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := FindProfileURLs(seed, tt.links)
			listings := FindSecondaryListingPages(seed, tt.links)
			require.NotEmpty(t, profiles)

			isProfile := make(map[string]bool)
			for _, p := range profiles {
				isProfile[p] = true
			}
			for _, l := range listings {
				key, _ := profileKey(seed, l)
				assert.False(t, isProfile[key], "url in both sets: %s", l)
				assert.False(t, isProfile[l], "url in both sets: %s", l)
			}
			assert.Equal(t, Classify(seed, tt.links).Listings, listings)
		})
	}
}

func TestFindSecondaryListingPages_SeedPaginationSkipped(t *testing.T) {
	t.Parallel()
	got := FindSecondaryListingPages(seed, []string{
		"https://cis.example.edu/people/faculty/?page=2",
		"https://cis.example.edu/people/faculty?start=20",
		"/people/faculty/index.html?offset=40",
	})
	assert.Empty(t, got)
}

func TestClassify_CrossHostNeverClassified(t *testing.T) {
	t.Parallel()

	foreign := []string{
		"https://evil.example.com/people/jane-doe/",
		"https://evil.example.com/faculty/?page=2",
		"http://cis.example.edu.evil.com/people/x",
		"https://sub.cis.example.edu/people/jane-doe/",
	}
	c := Classify(seed, foreign)
	assert.Empty(t, c.Profiles)
	assert.Empty(t, c.Listings)
	for _, l := range foreign {
		assert.Equal(t, model.URLClassIgnored, ClassifyURL(seed, l), l)
		assert.False(t, SameHost(seed, l), l)
	}
}

func TestClassifyURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		link string
		want model.URLClass
	}{
		{"https://cis.example.edu/people/jane-doe/", model.URLClassProfile},
		{"https://cis.example.edu/people/staff/", model.URLClassSecondaryListing},
		{"https://cis.example.edu/people/faculty/?page=4", model.URLClassIgnored},
		{"https://cis.example.edu/people/faculty/index.html?page=4", model.URLClassIgnored},
		{"https://cis.example.edu/directory/?page=4", model.URLClassSecondaryListing},
		{seed, model.URLClassIgnored},
		{"https://cis.example.edu/contact/", model.URLClassIgnored},
		{"ftp://cis.example.edu/people/jane-doe", model.URLClassIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyURL(seed, tt.link))
		})
	}
	assert.Equal(t, model.URLClassIgnored, ClassifyURL("://bad", "https://cis.example.edu/people/x"))
}

package discovery

import (
	"net/url"
	"strings"

	"github.com/sells-group/faculty-cli/internal/model"
)

// Classification is the result of classifying one link set against a seed.
// Profiles and Listings are disjoint.
type Classification struct {
	Profiles []string
	Listings []string
}

// Classify splits links into profile URLs and secondary listing pages. A
// link accepted as a profile never appears among the listings.
func Classify(seedURL string, links []string) Classification {
	profiles := FindProfileURLs(seedURL, links)
	return Classification{
		Profiles: profiles,
		Listings: secondaryListings(seedURL, links, profiles),
	}
}

// FindProfileURLs returns the same-host links that look like individual
// profile pages, normalized to origin + path (trailing slash stripped) +
// query, deduplicated in order of first appearance.
func FindProfileURLs(seedURL string, links []string) []string {
	base, err := url.Parse(seedURL)
	if err != nil {
		return []string{}
	}

	seen := map[string]struct{}{normalizeProfile(base): {}}
	profiles := []string{}
	for _, link := range links {
		u, ok := resolveSameHost(base, link)
		if !ok {
			continue
		}
		normalized := normalizeProfile(u)
		if _, dup := seen[normalized]; dup {
			continue
		}
		if !isProfileURL(u) {
			continue
		}
		seen[normalized] = struct{}{}
		profiles = append(profiles, normalized)
	}
	return profiles
}

// FindSecondaryListingPages returns up to MaxListingPages same-host links
// that look like additional listing pages. Links whose normalized path equals
// the seed's are skipped whatever their query, as are links FindProfileURLs
// accepts for the same input.
func FindSecondaryListingPages(seedURL string, links []string) []string {
	return secondaryListings(seedURL, links, FindProfileURLs(seedURL, links))
}

func secondaryListings(seedURL string, links, profiles []string) []string {
	isProfile := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		isProfile[p] = struct{}{}
	}

	listings := []string{}
	for _, l := range findListingCandidates(seedURL, links) {
		if key, ok := profileKey(seedURL, l); ok {
			if _, dup := isProfile[key]; dup {
				continue
			}
		}
		listings = append(listings, l)
		if len(listings) == MaxListingPages {
			break
		}
	}
	return listings
}

// ClassifyURL returns the class of a single candidate link.
func ClassifyURL(seedURL, link string) model.URLClass {
	base, err := url.Parse(seedURL)
	if err != nil {
		return model.URLClassIgnored
	}
	u, ok := resolveSameHost(base, link)
	if !ok {
		return model.URLClassIgnored
	}
	if normalizeProfile(u) != normalizeProfile(base) && isProfileURL(u) {
		return model.URLClassProfile
	}
	if isListingURL(base, u, link) {
		return model.URLClassSecondaryListing
	}
	return model.URLClassIgnored
}

// SameHost reports whether link resolves to the seed's host.
func SameHost(seedURL, link string) bool {
	base, err := url.Parse(seedURL)
	if err != nil {
		return false
	}
	_, ok := resolveSameHost(base, link)
	return ok
}

func findListingCandidates(seedURL string, links []string) []string {
	base, err := url.Parse(seedURL)
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{seedURL: {}}
	var listings []string
	for _, link := range links {
		if _, dup := seen[link]; dup {
			continue
		}
		u, ok := resolveSameHost(base, link)
		if !ok {
			continue
		}
		if !isListingURL(base, u, link) {
			continue
		}
		seen[link] = struct{}{}
		listings = append(listings, link)
	}
	return listings
}

func isProfileURL(u *url.URL) bool {
	path := u.EscapedPath()
	if !matchAny(ProfilePathRules, path) && !matchAny(ProfileQueryRules, search(u)) {
		return false
	}
	return !matchAny(ProfileExclusionRules, path)
}

// isListingURL applies the listing rules. Nothing sharing the seed's
// normalized path is a secondary listing, including its own pagination.
func isListingURL(base, u *url.URL, raw string) bool {
	linkPath := listingPath(u.Path)
	if linkPath == listingPath(base.Path) {
		return false
	}

	isPagination := matchAny(PaginationRules, raw)
	isListing := false
	lower := strings.ToLower(linkPath)
	for _, k := range ListingKeywords {
		if strings.Contains(lower, k) {
			isListing = true
			break
		}
	}
	if !isPagination && !isListing {
		return false
	}
	return pathDepth(linkPath) <= MaxListingDepth
}

func profileKey(seedURL, link string) (string, bool) {
	base, err := url.Parse(seedURL)
	if err != nil {
		return "", false
	}
	u, ok := resolveSameHost(base, link)
	if !ok {
		return "", false
	}
	return normalizeProfile(u), true
}

// resolveSameHost resolves link against base and reports whether the result
// is an http(s) URL on base's host.
func resolveSameHost(base *url.URL, link string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return nil, false
	}
	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if !strings.EqualFold(u.Hostname(), base.Hostname()) {
		return nil, false
	}
	return u, true
}

func normalizeProfile(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) +
		strings.TrimSuffix(u.EscapedPath(), "/") + search(u)
}

func search(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}
	return "?" + u.RawQuery
}

func listingPath(p string) string {
	p = strings.TrimSuffix(p, "/")
	return strings.TrimSuffix(p, "/index.html")
}

func pathDepth(p string) int {
	n := 0
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			n++
		}
	}
	return n
}

// Package discovery classifies candidate URLs found on a faculty-directory
// site into individual profile pages and secondary listing pages.
package discovery

import "regexp"

// Rule is one classification pattern with the reason it exists.
type Rule struct {
	Pattern *regexp.Regexp
	Purpose string
}

// Matches reports whether s matches the rule's pattern.
func (r Rule) Matches(s string) bool {
	return r.Pattern.MatchString(s)
}

func rule(expr, purpose string) Rule {
	return Rule{Pattern: regexp.MustCompile(expr), Purpose: purpose}
}

// ProfilePathRules are matched against the path. A URL must match one of
// them or one of ProfileQueryRules to be considered a profile page.
var ProfilePathRules = []Rule{
	rule(`(?i)/faculty/[^/]+/?$`, "single slug under /faculty/"),
	rule(`(?i)/people/[^/]+/?$`, "single slug under /people/"),
	rule(`(?i)/profile/[^/]+/?$`, "single slug under /profile/"),
	rule(`(?i)/faculty-research/faculty-directory/[^/]+/?$`, "single slug under a faculty-research directory"),
	rule(`(?i)/directory/[^/]+/?$`, "single slug under /directory/"),
	rule(`(?i)/bio/[^/]+/?$`, "single slug under /bio/"),
	rule(`(?i)/staff/[^/]+/?$`, "single slug under /staff/"),
	rule(`(?i)/members/[^/]+/?$`, "single slug under /members/"),
}

// ProfileQueryRules are matched against "?" + the raw query.
var ProfileQueryRules = []Rule{
	rule(`(?i)\?profile=`, "profile query parameter"),
	rule(`(?i)\?id=`, "id query parameter"),
}

// ProfileExclusionRules are matched against the path. A URL matching any of
// them is never a profile page.
var ProfileExclusionRules = []Rule{
	rule(`(?i)\.(pdf|doc|docx|jpg|jpeg|png|gif|css|js|xml|json)$`, "binary or document asset"),
	rule(`(?i)/(news|events|blog|research|publications|courses|programs|admissions|about|contact)/`, "non-person content section"),
	rule(`(?i)index\.html$`, "bare index page"),
	rule(`(?i)/faculty-research/faculty-directory/?$`, "directory root"),
	rule(`(?i)/(faculty|people|profile|directory|bio|staff|members)/(faculty|people|staff|directory|professors|members|department|emeriti|emeritus|adjunct|all|list)/?$`, "listing keyword used as a slug"),
}

// PaginationRules are matched against the full URL.
var PaginationRules = []Rule{
	rule(`(?i)[?&]page=\d+`, "page query parameter"),
	rule(`(?i)/page/\d+`, "page path segment"),
	rule(`(?i)[?&]p=\d+`, "short page query parameter"),
	rule(`(?i)[?&]offset=\d+`, "offset query parameter"),
	rule(`(?i)[?&]start=\d+`, "start query parameter"),
}

// ListingKeywords mark a path as a likely listing page.
var ListingKeywords = []string{
	"faculty",
	"people",
	"staff",
	"directory",
	"professors",
	"members",
	"department",
}

// Limits on secondary listing pages.
const (
	MaxListingDepth = 5
	MaxListingPages = 30
)

func matchAny(rules []Rule, s string) bool {
	for _, r := range rules {
		if r.Matches(s) {
			return true
		}
	}
	return false
}

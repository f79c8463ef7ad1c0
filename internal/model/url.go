package model

// URLClass is the category a candidate URL falls into.
type URLClass string

const (
	URLClassProfile          URLClass = "profile"
	URLClassSecondaryListing URLClass = "secondaryListing"
	URLClassIgnored          URLClass = "ignored"
)


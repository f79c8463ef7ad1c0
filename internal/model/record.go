package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one extracted faculty member.
type Record struct {
	FullName         string  `json:"fullName" yaml:"full_name"`
	LastName         string  `json:"lastName" yaml:"last_name"`
	Email            *string `json:"email" yaml:"email"`
	ProfileURL       string  `json:"profileUrl" yaml:"profile_url"`
	Title            *string `json:"title" yaml:"title"`
	GroupLabel       string  `json:"groupLabel" yaml:"group_label"`
	ImageURL         *string `json:"imageUrl" yaml:"image_url"`
	IsResearchActive bool    `json:"isResearchActive" yaml:"is_research_active"`
}

// Key returns the merge key for the record.
func (r Record) Key() string {
	return NormalizeName(r.FullName)
}

// Clone returns a copy of r that shares no pointers with it.
func (r Record) Clone() Record {
	out := r
	out.Email = clonePtr(r.Email)
	out.Title = clonePtr(r.Title)
	out.ImageURL = clonePtr(r.ImageURL)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// NormalizeName lowercases and trims a name for keying. Names are put in
// NFC form first so composed and decomposed accents produce the same key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}

// EligibleKey reports whether a normalized key may enter the merge.
func EligibleKey(key string) bool {
	return key != "" && key != "unknown"
}

// LastName returns the final whitespace-separated token of fullName, or
// fullName itself when it has no whitespace.
func LastName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	return fields[len(fields)-1]
}

// ValidEmail returns a pointer to the trimmed email when it contains "@",
// nil otherwise.
func ValidEmail(email string) *string {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil
	}
	return &email
}

// Package merge combines partial faculty records from several extraction
// tasks into one record per person.
package merge

import "github.com/sells-group/faculty-cli/internal/model"

// Merge deduplicates records by normalized full name. The first record seen
// for a name is kept; later duplicates only fill its empty email, profile URL
// and title. IsResearchActive is never changed after the first record.
// Records whose key is empty or "unknown" are dropped. The input is not
// modified and the output is in first-arrival order.
func Merge(records []model.Record) []model.Record {
	index := make(map[string]int, len(records))
	out := make([]model.Record, 0, len(records))

	for _, rec := range records {
		key := rec.Key()
		if !model.EligibleKey(key) {
			continue
		}

		i, seen := index[key]
		if !seen {
			index[key] = len(out)
			out = append(out, rec.Clone())
			continue
		}

		fill(&out[i], rec)
	}
	return out
}

func fill(dst *model.Record, src model.Record) {
	if isEmpty(dst.Email) && !isEmpty(src.Email) {
		v := *src.Email
		dst.Email = &v
	}
	if dst.ProfileURL == "" && src.ProfileURL != "" {
		dst.ProfileURL = src.ProfileURL
	}
	if isEmpty(dst.Title) && !isEmpty(src.Title) {
		v := *src.Title
		dst.Title = &v
	}
}

func isEmpty(s *string) bool {
	return s == nil || *s == ""
}

package pipeline

import "github.com/sells-group/faculty-cli/internal/model"

// Assemble builds the success response for merged records.
func Assemble(records []model.Record, pagesScraped, profileURLsFound int, runID string) *model.ScrapeResponse {
	if records == nil {
		records = []model.Record{}
	}
	total := len(records)
	active := 0
	for _, r := range records {
		if r.IsResearchActive {
			active++
		}
	}
	return &model.ScrapeResponse{
		Success:          true,
		Records:          records,
		Total:            &total,
		ResearchActive:   &active,
		PagesScraped:     &pagesScraped,
		ProfileURLsFound: &profileURLsFound,
		RunID:            runID,
	}
}

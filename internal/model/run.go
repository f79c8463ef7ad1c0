package model

// RunStatus represents the current state of a discovery run.
type RunStatus string

const (
	RunStatusMapping     RunStatus = "mapping"
	RunStatusClassifying RunStatus = "classifying"
	RunStatusExtracting  RunStatus = "extracting"
	RunStatusMerging     RunStatus = "merging"
	RunStatusDone        RunStatus = "done"
	RunStatusFailed      RunStatus = "failed"
)

// PhaseStatus represents the outcome of a pipeline phase.
type PhaseStatus string

const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFailed   PhaseStatus = "failed"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult holds the outcome of a pipeline phase.
type PhaseResult struct {
	Name     string         `json:"name"`
	Status   PhaseStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ScrapeRequest is the input to one discovery run.
type ScrapeRequest struct {
	FacultyURL string `json:"facultyUrl" validate:"required"`
	GroupLabel string `json:"groupLabel"`
}

// ScrapeResponse is the result of one discovery run.
type ScrapeResponse struct {
	Success          bool          `json:"success"`
	Records          []Record      `json:"records"`
	Total            *int          `json:"total,omitempty"`
	ResearchActive   *int          `json:"researchActive,omitempty"`
	PagesScraped     *int          `json:"pagesScraped,omitempty"`
	ProfileURLsFound *int          `json:"profileUrlsFound,omitempty"`
	RunID            string        `json:"runId,omitempty"`
	Phases           []PhaseResult `json:"-"`
	Error            string        `json:"error,omitempty"`
}

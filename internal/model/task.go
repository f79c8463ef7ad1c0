package model

// TaskKind identifies the input shape of an extraction task.
type TaskKind string

const (
	TaskFromPageText TaskKind = "fromPageText"
	TaskFromURLList  TaskKind = "fromURLList"
)

// Strategy identifies which discovery path produced a task.
type Strategy string

const (
	StrategySeedPage    Strategy = "A" // seed page text
	StrategyProfileURLs Strategy = "B" // batches of profile URLs
	StrategyListing     Strategy = "C" // secondary listing page text
)

// ExtractionTask is one unit of work for the record extractor. Tasks are
// built by the constructors and not modified afterwards.
type ExtractionTask struct {
	Kind     TaskKind
	Strategy Strategy
	URL      string
	Text     string
	Links    []string
	URLs     []string
}

// NewPageTextTask builds a task that extracts records from page text.
func NewPageTextTask(strategy Strategy, url, text string, links []string) ExtractionTask {
	return ExtractionTask{
		Kind:     TaskFromPageText,
		Strategy: strategy,
		URL:      url,
		Text:     text,
		Links:    append([]string(nil), links...),
	}
}

// NewURLListTask builds a task that infers records from profile URLs.
func NewURLListTask(urls []string) ExtractionTask {
	return ExtractionTask{
		Kind:     TaskFromURLList,
		Strategy: StrategyProfileURLs,
		URLs:     append([]string(nil), urls...),
	}
}

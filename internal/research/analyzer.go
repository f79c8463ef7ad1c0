// Package research summarizes a faculty member's research interests from
// their profile page.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/faculty-cli/internal/extract"
	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/scrape"
)

// Caller-facing messages.
const (
	MsgProfileURLRequired = "Profile URL is required"
	MsgScrapeFailed       = "Failed to scrape professor profile"
	MsgAnalysisFailed     = "Failed to analyze research interests"
)

// DefaultInterests is used when the reply names no research area.
const DefaultInterests = "their research area"

const maxProfileChars = 10000

const systemPrompt = "You are an expert at understanding academic research and summarizing it in accessible terms. Always respond with valid JSON only."

// Analysis is the research summary for one person.
type Analysis struct {
	ResearchInterests string   `json:"researchInterests" yaml:"research_interests"`
	Email             *string  `json:"email" yaml:"email"`
	Publications      []string `json:"publications" yaml:"publications"`
	Summary           string   `json:"summary" yaml:"summary"`
}

// Completer sends one prompt with retries and returns the raw reply.
// *extract.Extractor satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Analyzer fetches profile pages and asks the completion service for a
// broad summary of the research they describe.
type Analyzer struct {
	scraper   scrape.Scraper
	completer Completer
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(s scrape.Scraper, c Completer) *Analyzer {
	return &Analyzer{scraper: s, completer: c}
}

// Analyze summarizes the research on profileURL. Failures are returned as
// *model.RequestError.
func (a *Analyzer) Analyze(ctx context.Context, profileURL, name string) (*Analysis, error) {
	profileURL = strings.TrimSpace(profileURL)
	if profileURL == "" {
		return nil, &model.RequestError{Status: http.StatusBadRequest, Message: MsgProfileURLRequired}
	}
	log := zap.L().With(zap.String("profile_url", profileURL), zap.String("name", name))

	result, err := a.scraper.Scrape(ctx, profileURL)
	if err != nil || result == nil || strings.TrimSpace(result.Page.Text) == "" {
		log.Warn("research: profile scrape failed", zap.Error(err))
		return nil, &model.RequestError{Status: http.StatusBadGateway, Message: MsgScrapeFailed}
	}

	reply, err := a.completer.Complete(ctx, systemPrompt, buildPrompt(name, result.Page.Text))
	switch {
	case errors.Is(err, extract.ErrRateLimited):
		return nil, &model.RequestError{Status: http.StatusTooManyRequests, Message: model.MsgRateLimited}
	case errors.Is(err, extract.ErrQuotaExhausted):
		return nil, &model.RequestError{Status: http.StatusPaymentRequired, Message: model.MsgQuotaExhausted}
	case err != nil:
		log.Error("research: completion failed", zap.Error(err))
		return nil, &model.RequestError{Status: http.StatusInternalServerError, Message: MsgAnalysisFailed}
	}

	analysis := parseAnalysis(reply)
	log.Info("research: analysis complete", zap.Int("publications", len(analysis.Publications)))
	return analysis, nil
}

// parseAnalysis decodes the first JSON object in reply over the defaults.
// Fields of the wrong type keep their default.
func parseAnalysis(reply string) *Analysis {
	out := &Analysis{
		ResearchInterests: DefaultInterests,
		Publications:      []string{},
	}

	raw, ok := extract.ScanJSONObject(reply)
	if !ok {
		zap.L().Warn("research: reply had no JSON object")
		return out
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out
	}

	if s, ok := fields["researchInterests"].(string); ok && strings.TrimSpace(s) != "" {
		out.ResearchInterests = strings.TrimSpace(s)
	}
	if s, ok := fields["email"].(string); ok {
		out.Email = model.ValidEmail(s)
	}
	if list, ok := fields["publications"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out.Publications = append(out.Publications, strings.TrimSpace(s))
			}
		}
	}
	if s, ok := fields["summary"].(string); ok {
		out.Summary = strings.TrimSpace(s)
	}
	return out
}

func buildPrompt(name, profile string) string {
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}
	if r := []rune(profile); len(r) > maxProfileChars {
		profile = string(r[:maxProfileChars])
	}

	var b strings.Builder
	b.WriteString("You are analyzing a university professor's profile page. Identify their research interests and ")
	b.WriteString("summarize them in EXTREMELY BROAD terms that a high school student could understand.\n\n")
	fmt.Fprintf(&b, "Professor: %s\nProfile content:\n%s\n\n", name, profile)
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Find their main research areas from stated interests, publications, lab or group descriptions, and courses.\n")
	b.WriteString("2. Summarize them as ONE OR TWO very broad phrases, e.g. \"machine learning and artificial intelligence\", ")
	b.WriteString("\"cancer biology\", \"renewable energy systems\". Avoid narrow technical descriptions.\n")
	b.WriteString("3. Extract their email if it is visible on the page.\n\n")
	b.WriteString("Respond with JSON only:\n")
	b.WriteString(`{"researchInterests": "one or two broad phrases", "email": "address or null", "publications": ["3-5 recent titles if visible"], "summary": "2-3 sentence summary of their research focus"}`)
	return b.String()
}

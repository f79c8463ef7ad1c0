package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/faculty-cli/internal/model"
	"github.com/sells-group/faculty-cli/internal/research"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return eris.Errorf("unknown output format %q (want table, json, or yaml)", format)
}

// scrapeSummary is the YAML shape of a scrape response.
type scrapeSummary struct {
	RunID            string         `yaml:"run_id"`
	Total            int            `yaml:"total"`
	ResearchActive   int            `yaml:"research_active"`
	PagesScraped     int            `yaml:"pages_scraped"`
	ProfileURLsFound int            `yaml:"profile_urls_found"`
	Records          []model.Record `yaml:"records"`
}

func writeScrape(w io.Writer, format string, resp *model.ScrapeResponse) error {
	switch format {
	case formatJSON:
		return writeJSON(w, resp)
	case formatYAML:
		return writeYAML(w, scrapeSummary{
			RunID:            resp.RunID,
			Total:            deref(resp.Total),
			ResearchActive:   deref(resp.ResearchActive),
			PagesScraped:     deref(resp.PagesScraped),
			ProfileURLsFound: deref(resp.ProfileURLsFound),
			Records:          resp.Records,
		})
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Title", "Email", "Research", "Profile"})
	for _, r := range resp.Records {
		t.AppendRow(table.Row{r.FullName, str(r.Title), str(r.Email), yesNo(r.IsResearchActive), r.ProfileURL})
	}
	t.AppendFooter(table.Row{
		fmt.Sprintf("%d total", deref(resp.Total)),
		"",
		"",
		fmt.Sprintf("%d active", deref(resp.ResearchActive)),
		fmt.Sprintf("%d pages, %d profile URLs", deref(resp.PagesScraped), deref(resp.ProfileURLsFound)),
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func writeAnalysis(w io.Writer, format string, a *research.Analysis) error {
	switch format {
	case formatJSON:
		return writeJSON(w, a)
	case formatYAML:
		return writeYAML(w, a)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendRow(table.Row{"Research interests", a.ResearchInterests})
	t.AppendRow(table.Row{"Email", str(a.Email)})
	t.AppendRow(table.Row{"Summary", a.Summary})
	t.AppendRow(table.Row{"Publications", strings.Join(a.Publications, "\n")})
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return eris.Wrap(enc.Close(), "close yaml encoder")
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

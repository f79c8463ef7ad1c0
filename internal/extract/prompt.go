package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	urlListSystem  = "You extract structured data from URLs. Always respond with valid JSON only."
	pageTextSystem = "You extract structured data from university faculty web pages. Always respond with valid JSON only. Extract EVERY faculty member."
)

func urlListPrompt(urls []string) string {
	var b strings.Builder
	b.WriteString("Below is a list of faculty profile URLs from a university department website.\n")
	b.WriteString("For each URL, infer the faculty member's full name from the URL slug ")
	b.WriteString("(for example \".../people/jane-doe\" becomes \"Jane Doe\").\n")
	b.WriteString("Mark each person as research-active unless the URL suggests they are emeritus, adjunct, visiting, or a lecturer.\n\n")
	b.WriteString("URLs:\n")
	for i, u := range urls {
		fmt.Fprintf(&b, "%d. %s\n", i+1, u)
	}
	b.WriteString("\nReturn a JSON array of objects with these fields:\n")
	b.WriteString(`[{"name": "Full Name", "profileUrl": "the URL", "title": null, "isResearchActive": true}]`)
	b.WriteString("\n\nReturn ONLY the JSON array, no other text.")
	return b.String()
}

func pageTextPrompt(pageURL, text string, links []string) string {
	linksJSON, err := json.Marshal(links)
	if err != nil {
		linksJSON = []byte("[]")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Extract every faculty member listed on this university department page (%s).\n\n", pageURL)
	b.WriteString("For each person return:\n")
	b.WriteString("- name: full name\n")
	b.WriteString("- email: email address if shown, otherwise null\n")
	b.WriteString("- profileUrl: link to their individual profile page, chosen from the links below when possible\n")
	b.WriteString("- title: academic title (e.g. \"Associate Professor\"), otherwise null\n")
	b.WriteString("- isResearchActive: false for emeritus faculty, visiting and adjunct faculty, Professors of Practice, ")
	b.WriteString("and teaching-only lecturers or instructors; true for everyone else\n\n")
	b.WriteString("Skip staff who are not faculty (administrators, advisors, technicians).\n\n")
	b.WriteString("PAGE CONTENT:\n")
	b.WriteString(text)
	b.WriteString("\n\nLINKS ON PAGE:\n")
	b.Write(linksJSON)
	b.WriteString("\n\nReturn a JSON array:\n")
	b.WriteString(`[{"name": "...", "email": null, "profileUrl": "...", "title": "...", "isResearchActive": true}]`)
	b.WriteString("\n\nReturn ONLY the JSON array, no other text. Return [] if no faculty are listed.")
	return b.String()
}

package extract

import (
	"encoding/json"
	"strings"

	"github.com/sells-group/faculty-cli/internal/model"
)

// parseRecords decodes a completion reply into validated records. Elements
// that are not objects or lack a name are dropped.
func parseRecords(reply, groupLabel string) ([]model.Record, bool) {
	raw, ok := ScanJSONArray(reply)
	if !ok {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}

	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		if rec, ok := coerceRecord(fields, groupLabel); ok {
			records = append(records, rec)
		}
	}
	return records, true
}

// coerceRecord validates one decoded element against the Record schema.
func coerceRecord(fields map[string]any, groupLabel string) (model.Record, bool) {
	name := strings.Join(strings.Fields(stringField(fields, "name", "fullName")), " ")
	if name == "" {
		return model.Record{}, false
	}

	rec := model.Record{
		FullName:         name,
		LastName:         model.LastName(name),
		Email:            model.ValidEmail(stringField(fields, "email")),
		ProfileURL:       strings.TrimSpace(stringField(fields, "profileUrl", "profile_url", "url")),
		GroupLabel:       groupLabel,
		IsResearchActive: boolField(fields, "isResearchActive", true),
	}
	if title := strings.TrimSpace(stringField(fields, "title")); title != "" && !strings.EqualFold(title, "null") {
		rec.Title = &title
	}
	return rec, true
}

// stringField returns the first string value among keys.
func stringField(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok {
			return s
		}
	}
	return ""
}

func boolField(fields map[string]any, key string, def bool) bool {
	switch v := fields[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes":
			return true
		case "false", "no":
			return false
		}
	}
	return def
}

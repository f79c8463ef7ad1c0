package extract

import (
	"encoding/json"
	"strings"
)

// ScanJSONArray returns the first balanced [...] in text that is valid JSON
// and holds at least one object. When no such array exists the first valid
// array is returned, so a bare [] still parses. Markdown code fences are
// ignored and brackets inside strings do not count.
func ScanJSONArray(text string) (json.RawMessage, bool) {
	return scanJSON(text, '[', ']', holdsObject)
}

// ScanJSONObject returns the first balanced {...} in text that is valid JSON.
func ScanJSONObject(text string) (json.RawMessage, bool) {
	return scanJSON(text, '{', '}', nil)
}

// scanJSON walks the balanced runs opened by open. The first valid run that
// satisfies prefer wins; failing that, the first valid run.
func scanJSON(text string, open, closeCh byte, prefer func(json.RawMessage) bool) (json.RawMessage, bool) {
	text = stripFences(text)

	var fallback json.RawMessage
	for start := strings.IndexByte(text, open); start >= 0; {
		if end, ok := matchBracket(text, start, open, closeCh); ok {
			candidate := json.RawMessage(text[start : end+1])
			if json.Valid(candidate) {
				if prefer == nil || prefer(candidate) {
					return candidate, true
				}
				if fallback == nil {
					fallback = candidate
				}
			}
		}
		next := strings.IndexByte(text[start+1:], open)
		if next < 0 {
			break
		}
		start += next + 1
	}
	return fallback, fallback != nil
}

func holdsObject(raw json.RawMessage) bool {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return false
	}
	for _, e := range elems {
		if strings.HasPrefix(strings.TrimSpace(string(e)), "{") {
			return true
		}
	}
	return false
}

// matchBracket returns the index of the bracket closing the one at start.
func matchBracket(text string, start int, open, closeCh byte) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:] // language tag
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

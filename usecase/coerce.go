package usecase

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The provider's deviations from strict JSON are patterned, not arbitrary:
// markdown fencing, smart quotes, trailing commas. Targeted repairs cover
// them without pulling in a permissive parser.
var (
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	smartQuotes     = strings.NewReplacer(
		"“", `"`, "”", `"`, // double
		"‘", "'", "’", "'", // single
	)
)

// Coerce repairs raw model output into valid JSON. It never panics; on
// failure it returns a *CoerceError carrying the original text.
func Coerce(raw string) (json.RawMessage, error) {
	cleaned := stripFences(raw)

	// Trim to the outermost object span.
	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	cleaned = smartQuotes.Replace(cleaned)
	cleaned = trailingCommaRe.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	var probe json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, &CoerceError{Raw: raw, Err: err}
	}
	return probe, nil
}

// CoerceInto repairs raw model output and unmarshals it into v.
func CoerceInto(raw string, v any) error {
	cleaned, err := Coerce(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(cleaned, v); err != nil {
		return &CoerceError{Raw: raw, Err: err}
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "```") {
		return s
	}
	if i := strings.Index(s, "```json"); i != -1 {
		s = s[i+len("```json"):]
	} else if i := strings.Index(s, "```"); i != -1 {
		s = s[i+3:]
	}
	if end := strings.LastIndex(s, "```"); end != -1 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

package domain

import (
	"encoding/json"
	"strings"
	"unicode"
)

const codeFence = "```"

// ParseSummaryResponse recovers a SummaryRecord from free-form model output.
// Fences and prose around the first '{' ... last '}' span are ignored.
func ParseSummaryResponse(raw string) (SummaryRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return SummaryRecord{}, NewError(KindMalformedResponse, "no response text to parse", nil)
	}

	stripped := stripCodeFence(raw)

	start := strings.Index(stripped, "{")
	end := strings.LastIndex(stripped, "}")
	if start == -1 || end == -1 || end <= start {
		return SummaryRecord{}, NewError(KindMalformedResponse, "missing JSON object in response", nil)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(stripped[start:end+1]), &fields); err != nil {
		return SummaryRecord{}, NewError(KindMalformedResponse, "decode JSON object", err)
	}

	return NormalizeSummary(fields), nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, codeFence) {
		text = strings.TrimPrefix(text, codeFence)
		// optional language tag, e.g. ```json
		text = strings.TrimLeftFunc(text, unicode.IsLetter)
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
	}
	text = strings.TrimSuffix(text, codeFence)

	return strings.TrimSpace(text)
}

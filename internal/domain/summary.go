package domain

import "strings"

type SummaryRecord struct {
	Summary      string   `json:"summary"`
	WhyItMatters string   `json:"whyItMatters"`
	Tags         []string `json:"tags"`
}

// NormalizeSummary builds a SummaryRecord from a decoded model object.
// Wrong-typed or missing fields fall back to their zero values; tags keep
// only non-blank strings, trimmed, in their original order.
func NormalizeSummary(fields map[string]any) SummaryRecord {
	return SummaryRecord{
		Summary:      trimmedString(fields["summary"]),
		WhyItMatters: trimmedString(fields["whyItMatters"]),
		Tags:         normalizeTags(fields["tags"]),
	}
}

func trimmedString(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}

	return strings.TrimSpace(s)
}

func normalizeTags(value any) []string {
	raw, ok := value.([]any)
	if !ok {
		return []string{}
	}

	tags := make([]string, 0, len(raw))
	for _, entry := range raw {
		tag := trimmedString(entry)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}

	return tags
}

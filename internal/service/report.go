package service

import (
	"strings"

	"soulmatch/internal/models"
)

var sectionMarkers = []string{MarkerVerdict, MarkerStrengths, MarkerFrictions, MarkerAdvice}

// ParseReport splits a narrative report into its four sections. It reads the
// marker scheme first and falls back to the numbered headings of reports cached
// before markers existed. ok is false when neither layout is found.
func ParseReport(text string) (models.ReportSections, bool) {
	// An offline preview carries the prompt, whose instructions contain the
	// markers; it is not a report.
	if strings.HasPrefix(strings.TrimSpace(text), OfflineMarker) {
		return models.ReportSections{}, false
	}
	if sections, ok := parseMarkedReport(text); ok {
		return sections, true
	}
	return parseLegacyReport(text)
}

func parseMarkedReport(text string) (models.ReportSections, bool) {
	parts, found := splitOnHeadings(text, sectionMarkers)
	if found == 0 {
		return models.ReportSections{}, false
	}
	return models.ReportSections{
		Verdict:   parts[0],
		Strengths: parts[1],
		Frictions: parts[2],
		Advice:    parts[3],
	}, true
}

// legacyHeadings are the numbered titles older prompts asked for.
var legacyHeadings = []string{"1. 核心结论", "2. 关键优势分析", "3. 潜在雷区预警", "4. 长期相处建议"}

// parseLegacyReport only exists to render reports already sitting in the cache.
func parseLegacyReport(text string) (models.ReportSections, bool) {
	parts, found := splitOnHeadings(text, legacyHeadings)
	if found < 2 {
		return models.ReportSections{}, false
	}
	for i, p := range parts {
		p = strings.TrimLeft(p, ":： \n")
		// drop an echoed "（...）" instruction right after the heading
		if strings.HasPrefix(p, "（") {
			if idx := strings.Index(p, "）"); idx >= 0 {
				p = p[idx+len("）"):]
			}
		}
		parts[i] = strings.TrimSpace(strings.TrimLeft(p, ":： \n"))
	}
	return models.ReportSections{
		Verdict:   parts[0],
		Strengths: parts[1],
		Frictions: parts[2],
		Advice:    parts[3],
	}, true
}

// splitOnHeadings cuts text at each heading in order. A heading that is not
// present leaves its part empty. found counts the headings located.
func splitOnHeadings(text string, headings []string) ([]string, int) {
	type hit struct {
		index, start int
	}
	var hits []hit
	for i, h := range headings {
		if pos := strings.Index(text, h); pos >= 0 {
			hits = append(hits, hit{index: i, start: pos})
		}
	}

	parts := make([]string, len(headings))
	for _, h := range hits {
		begin := h.start + len(headings[h.index])
		end := len(text)
		for _, other := range hits {
			if other.start > h.start && other.start < end {
				end = other.start
			}
		}
		if begin <= end {
			parts[h.index] = strings.TrimSpace(text[begin:end])
		}
	}
	return parts, len(hits)
}

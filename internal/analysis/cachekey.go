package analysis

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"soulmatch/internal/catalog"
	"soulmatch/internal/models"
)

// anonymousName stands in for any unnamed profile in the fallback key. One
// placeholder for both sides keeps the key independent of argument order.
const anonymousName = "anon"

// CacheKey derives the report cache key for a pair of profiles. The pair is
// unordered, so swapping a and b yields the same key.
func CacheKey(cat catalog.Catalog, a, b models.Profile, logger *slog.Logger) string {
	a, b = a.Normalized(), b.Normalized()
	version := max(a.Version, b.Version)
	if version <= 0 {
		version = models.ProfileVersion
	}

	if len(a.Answers) != catalog.Len(cat, a.Scenario) || len(b.Answers) != catalog.Len(cat, b.Scenario) {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("answer vector does not match catalog, using name-based cache key",
			"scenario_a", a.Scenario, "answers_a", len(a.Answers),
			"scenario_b", b.Scenario, "answers_b", len(b.Answers))
		names := []string{a.DisplayName(anonymousName), b.DisplayName(anonymousName)}
		sort.Strings(names)
		return fmt.Sprintf("match_v%d_%s", version, strings.Join(names, "_"))
	}

	parts := []string{answersText(a.Answers), answersText(b.Answers)}
	sort.Strings(parts)
	return fmt.Sprintf("match_v%d_%s", version, strings.Join(parts, "|"))
}

func answersText(answers []int) string {
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Sprint(answers)
	}
	return string(raw)
}

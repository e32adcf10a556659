package experience

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/types"
)

// metricsSeparator joins multiple metrics found in one achievement
const metricsSeparator = " | "

// metricPattern matches percentages, currency amounts and number-unit phrases in textual order.
// Units may be hyphenated ("30-person") and cover the scale units of taxonomy.ExecutiveScalePattern.
var metricPattern = regexp.MustCompile(`(?i)` +
	`[-+]?\d+(?:[.,]\d+)?\s?%` +
	`|[$£€]\s?\d[\d,]*(?:\.\d+)?(?:\s?(?:k|m|mn|bn|million|billion)\b)?` +
	`|\b\d[\d,]*(?:\.\d+)?\+?[\s-]?(?:users|staff|person|people|engineers|employees|sites|servers|countries|locations|offices|projects|applications|systems|endpoints|vendors|suppliers|fte|hours|days|weeks|months|x)\b`)

// ExtractMetrics returns every metric phrase found in the text, deduplicated and joined with " | ".
// Returns an empty string when nothing matches.
func ExtractMetrics(text string) string {
	matches := metricPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	unique := make([]string, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m != "" && !seen[m] {
			unique = append(unique, m)
			seen[m] = true
		}
	}
	return strings.Join(unique, metricsSeparator)
}

// HasMetric reports whether an achievement carries a metric, either recorded or present in its text
func HasMetric(a types.Achievement) bool {
	if strings.TrimSpace(a.Metrics) != "" {
		return true
	}
	return metricPattern.MatchString(a.Text)
}

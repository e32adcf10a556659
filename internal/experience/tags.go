package experience

import (
	"regexp"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
)

type compiledTagRule struct {
	tag     string
	pattern *regexp.Regexp
}

var tagRules = compileTagRules()

func compileTagRules() []compiledTagRule {
	rules := make([]compiledTagRule, 0, len(taxonomy.TagRules))
	for _, r := range taxonomy.TagRules {
		rules = append(rules, compiledTagRule{tag: r.Tag, pattern: regexp.MustCompile(r.Pattern)})
	}
	return rules
}

// InferTags returns every vocabulary tag whose keyword pattern matches the text, in vocabulary order.
// Tags are non-exclusive and the result is never nil.
func InferTags(text string) []string {
	tags := []string{}
	if text == "" {
		return tags
	}
	for _, r := range tagRules {
		if r.pattern.MatchString(text) {
			tags = append(tags, r.tag)
		}
	}
	return tags
}

// FilterTags drops tags outside the vocabulary and duplicates, keeping input order
func FilterTags(tags []string) []string {
	allowed := make(map[string]bool, len(tagRules))
	for _, r := range tagRules {
		allowed[r.tag] = true
	}

	filtered := make([]string, 0, len(tags))
	seen := make(map[string]bool)
	for _, tag := range tags {
		if allowed[tag] && !seen[tag] {
			filtered = append(filtered, tag)
			seen[tag] = true
		}
	}
	return filtered
}

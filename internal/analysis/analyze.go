// Package analysis matches job descriptions against career records using the keyword taxonomy.
package analysis

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-workbench/internal/parsing"
	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

const (
	// MinJDLength is the shortest trimmed job description, in characters, that can be analyzed
	MinJDLength = 50
	// MaxTopKeywords caps the keywords used as the match score denominator
	MaxTopKeywords = 30
	// TopCategoryCount is the number of categories reported as top categories
	TopCategoryCount = 3
	// EmphasisThreshold is the category score a category must exceed to contribute tag emphasis.
	// The score is an absolute keyword count, so short descriptions rarely exceed it.
	EmphasisThreshold = 1
)

// Analyze scores a job description against a career record. It returns *TooShortError when the
// trimmed description is shorter than MinJDLength. A nil record is treated as empty.
func Analyze(jdText string, record *types.CareerRecord) (*types.JDAnalysis, error) {
	trimmed := strings.TrimSpace(jdText)
	if n := utf8.RuneCountInString(trimmed); n < MinJDLength {
		return nil, &TooShortError{Length: n, Minimum: MinJDLength}
	}

	jdCorpus := parsing.Corpus(trimmed)
	scores := ScoreCategories(jdCorpus)
	topCategories := RankCategories(scores)
	topKeywords := TopKeywords(jdCorpus)
	present, missing := Partition(topKeywords, CVCorpus(record))

	return &types.JDAnalysis{
		MatchScore:           MatchScore(len(present), len(topKeywords)),
		TopKeywords:          topKeywords,
		PresentKeywords:      present,
		MissingKeywords:      missing,
		CategoryScores:       scores,
		TopCategories:        topCategories,
		SuggestedPositioning: SuggestPositioning(topCategories),
		TagEmphasis:          TagEmphasis(scores),
		WordCount:            len(strings.Fields(trimmed)),
		Source:               types.SourceHeuristic,
	}, nil
}

// ScoreCategories counts, per category, how many of its keywords occur in the corpus.
// Each keyword counts once regardless of how often it occurs.
func ScoreCategories(corpus string) map[string]int {
	scores := make(map[string]int, len(taxonomy.CategoryNames()))
	for _, category := range taxonomy.Categories() {
		scores[category.Name] = len(parsing.MatchKeywords(corpus, category.Keywords))
	}
	return scores
}

// RankCategories returns up to TopCategoryCount categories with a non-zero score, highest first.
// Ties keep taxonomy order.
func RankCategories(scores map[string]int) []string {
	ranked := make([]string, 0, len(scores))
	for _, name := range taxonomy.CategoryNames() {
		if scores[name] > 0 {
			ranked = append(ranked, name)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if len(ranked) > TopCategoryCount {
		ranked = ranked[:TopCategoryCount]
	}
	return ranked
}

// TopKeywords collects every taxonomy keyword present in the corpus, in taxonomy order,
// deduplicated and capped at MaxTopKeywords
func TopKeywords(corpus string) []string {
	keywords := make([]string, 0)
	seen := make(map[string]bool)
	for _, category := range taxonomy.Categories() {
		for _, kw := range parsing.MatchKeywords(corpus, category.Keywords) {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
			if len(keywords) == MaxTopKeywords {
				return keywords
			}
		}
	}
	return keywords
}

// Partition splits keywords into those found in the CV corpus and the rest.
// Both results are non-nil and together cover keywords exactly once.
func Partition(keywords []string, cvCorpus string) (present, missing []string) {
	present = make([]string, 0, len(keywords))
	missing = make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if parsing.ContainsKeyword(cvCorpus, kw) {
			present = append(present, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return present, missing
}

// MatchScore is the rounded percentage of present keywords; zero when there are none to match
func MatchScore(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(present) / float64(total)))
}

// SuggestPositioning picks a mode from the top categories. The first matching rule wins:
// governance or security, then infrastructure or cloud, then erp or digital, else hybrid.
func SuggestPositioning(topCategories []string) types.PositioningMode {
	has := func(names ...string) bool {
		for _, c := range topCategories {
			for _, n := range names {
				if c == n {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has(taxonomy.CategoryGovernance, taxonomy.CategorySecurity):
		return types.ModeGovernance
	case has(taxonomy.CategoryInfrastructure, taxonomy.CategoryCloud):
		return types.ModeInfrastructure
	case has(taxonomy.CategoryERP, taxonomy.CategoryDigital):
		return types.ModeDigital
	default:
		return types.ModeHybrid
	}
}

// TagEmphasis returns the tags of every category scoring above EmphasisThreshold, in taxonomy
// order, deduplicated
func TagEmphasis(scores map[string]int) []string {
	tags := make([]string, 0)
	seen := make(map[string]bool)
	for _, name := range taxonomy.CategoryNames() {
		if scores[name] <= EmphasisThreshold {
			continue
		}
		for _, tag := range taxonomy.CategoryTagEmphasis[name] {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// CVCorpus flattens the searchable text of a record into one normalized corpus: summary,
// roles, companies, achievement text, metrics and tags, skills and certification names
func CVCorpus(record *types.CareerRecord) string {
	if record == nil {
		return ""
	}

	parts := []string{record.Summary}
	for _, exp := range record.Experiences {
		parts = append(parts, exp.Role, exp.Company)
		for _, a := range exp.Achievements {
			parts = append(parts, a.Text, a.Metrics)
			parts = append(parts, a.Tags...)
		}
	}
	parts = append(parts, record.Skills.Technical...)
	parts = append(parts, record.Skills.Governance...)
	parts = append(parts, record.Skills.Leadership...)
	for _, cert := range record.Certifications {
		parts = append(parts, cert.Name)
	}
	return parsing.Corpus(strings.Join(parts, " "))
}

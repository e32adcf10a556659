package voice

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

const (
	// formulaicMetricGroups is the number of parenthesised metric groups that marks a template
	formulaicMetricGroups = 3
	// repetitionThreshold is how many achievements may share an opener before it is flagged
	repetitionThreshold = 3

	flagWeight         = 8
	highSeverityWeight = 15
)

// metricGroup matches a parenthesised group containing a digit, e.g. "(30%)" or "(£2m, 12 sites)"
var metricGroup = regexp.MustCompile(`\([^()]*\d[^()]*\)`)

type lexiconRule struct {
	phrase  string
	pattern *regexp.Regexp
}

var (
	buzzwordRules = compileLexicon(taxonomy.Buzzwords)
	genericRules  = compileLexicon(taxonomy.GenericPhrases)
)

// compileLexicon builds whole-word matchers so "synergy" does not also fire inside "synergies"
func compileLexicon(phrases []string) []lexiconRule {
	rules := make([]lexiconRule, 0, len(phrases))
	for _, p := range phrases {
		rules = append(rules, lexiconRule{
			phrase:  p,
			pattern: regexp.MustCompile(`(?i)(^|[^\w-])` + regexp.QuoteMeta(p) + `($|[^\w-])`),
		})
	}
	return rules
}

// ToneIntegrityCheck runs every lexical check against the text and returns all flags found.
// The result is never nil.
func ToneIntegrityCheck(text string) []types.ToneFlag {
	flags := []types.ToneFlag{}
	if strings.TrimSpace(text) == "" {
		return flags
	}

	for _, r := range buzzwordRules {
		if r.pattern.MatchString(text) {
			flags = append(flags, types.ToneFlag{
				Type:     types.FlagBuzzword,
				Severity: types.SeverityMedium,
				Phrase:   r.phrase,
				Message:  fmt.Sprintf("%q is a buzzword; describe the concrete outcome instead", r.phrase),
			})
		}
	}

	for _, r := range genericRules {
		if r.pattern.MatchString(text) {
			flags = append(flags, types.ToneFlag{
				Type:     types.FlagGeneric,
				Severity: types.SeverityHigh,
				Phrase:   r.phrase,
				Message:  fmt.Sprintf("%q is a generic phrase that reads as filler", r.phrase),
			})
		}
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	for _, opener := range taxonomy.WeakOpeners {
		if strings.HasPrefix(lower, opener) {
			flags = append(flags, types.ToneFlag{
				Type:     types.FlagWeakOpener,
				Severity: types.SeverityHigh,
				Phrase:   opener,
				Message:  fmt.Sprintf("Opens with %q; lead with what you did", opener),
			})
		}
	}

	if groups := metricGroup.FindAllString(text, -1); len(groups) >= formulaicMetricGroups {
		flags = append(flags, types.ToneFlag{
			Type:     types.FlagFormulaic,
			Severity: types.SeverityLow,
			Phrase:   strings.Join(groups, " "),
			Message:  fmt.Sprintf("%d bracketed metrics in one statement reads as templated", len(groups)),
		})
	}

	return flags
}

// AuditAIFeel checks every achievement for integrity flags and flags any opener shared by three
// or more achievements. RiskScore is min(100, 8 per flag + 15 per high-severity flag).
func AuditAIFeel(achievements []types.Achievement) *types.ToneAudit {
	flags := []types.ToneFlag{}
	counts := make(map[string]int)
	var openers []string

	for _, a := range achievements {
		for _, f := range ToneIntegrityCheck(a.Text) {
			f.AchievementID = a.ID
			flags = append(flags, f)
		}

		opener := Opener(a.Text)
		if opener == "" {
			continue
		}
		if counts[opener] == 0 {
			openers = append(openers, opener)
		}
		counts[opener]++
	}

	for _, opener := range openers {
		if counts[opener] >= repetitionThreshold {
			flags = append(flags, types.ToneFlag{
				Type:     types.FlagRepetition,
				Severity: types.SeverityHigh,
				Phrase:   opener,
				Message:  fmt.Sprintf("%d achievements open with %q; vary the opening verbs", counts[opener], opener),
			})
		}
	}

	return &types.ToneAudit{
		Flags:     flags,
		RiskScore: RiskScore(flags),
	}
}

// RiskScore weighs a set of flags into a 0-100 risk score
func RiskScore(flags []types.ToneFlag) int {
	high := 0
	for _, f := range flags {
		if f.Severity == types.SeverityHigh {
			high++
		}
	}
	return int(math.Min(100, float64(len(flags)*flagWeight+high*highSeverityWeight)))
}

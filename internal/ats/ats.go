// Package ats scores how ready a career record is for automated résumé screening.
package ats

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/parsing"
	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

// Thresholds used by the readiness checks
const (
	MinCoreSkills             = 5
	MinRoles                  = 2
	MinQuantifiedAchievements = 3
)

// Check labels, in scoring order
const (
	LabelSummary          = "Professional summary present"
	LabelSkills           = "5+ technical or governance skills"
	LabelRoles            = "2+ roles with titles"
	LabelCertification    = "Certification listed"
	LabelDegree           = "Degree listed"
	LabelGovernanceRisk   = "Governance and risk keywords"
	LabelBusinessStrategy = "Business and strategy keywords"
	LabelLeadershipVerbs  = "Leadership verbs in achievements"
	LabelExecutiveScale   = "Executive-scale statement"
	LabelContact          = "LinkedIn, email and phone present"
	LabelQuantified       = "3+ quantified achievements"
)

var (
	leadershipVerbs = regexp.MustCompile(taxonomy.LeadershipVerbPattern)
	executiveScale  = regexp.MustCompile(taxonomy.ExecutiveScalePattern)
)

// evidence is the text of a record gathered once for all checks
type evidence struct {
	record          *types.CareerRecord
	achievementText string
	corpus          string
}

func gather(record *types.CareerRecord) *evidence {
	var texts []string
	for _, exp := range record.Experiences {
		for _, a := range exp.Achievements {
			texts = append(texts, a.Text)
		}
	}
	achievementText := strings.Join(texts, "\n")

	skills := append(append(append([]string{}, record.Skills.Technical...), record.Skills.Governance...), record.Skills.Leadership...)
	return &evidence{
		record:          record,
		achievementText: achievementText,
		corpus:          parsing.Corpus(achievementText + " " + strings.Join(skills, " ")),
	}
}

func (e *evidence) hasAny(terms []string) bool {
	for _, term := range terms {
		if parsing.ContainsKeyword(e.corpus, term) {
			return true
		}
	}
	return false
}

// Check is one named readiness predicate
type Check struct {
	Label string
	pass  func(e *evidence) bool
}

// Checks is the fixed, ordered battery of readiness checks
var Checks = []Check{
	{LabelSummary, func(e *evidence) bool {
		return strings.TrimSpace(e.record.Summary) != ""
	}},
	{LabelSkills, func(e *evidence) bool {
		return len(e.record.Skills.Technical)+len(e.record.Skills.Governance) >= MinCoreSkills
	}},
	{LabelRoles, func(e *evidence) bool {
		n := 0
		for _, exp := range e.record.Experiences {
			if strings.TrimSpace(exp.Role) != "" {
				n++
			}
		}
		return n >= MinRoles
	}},
	{LabelCertification, func(e *evidence) bool {
		for _, c := range e.record.Certifications {
			if strings.TrimSpace(c.Name) != "" {
				return true
			}
		}
		return false
	}},
	{LabelDegree, func(e *evidence) bool {
		for _, ed := range e.record.Education {
			if strings.TrimSpace(ed.Degree) != "" {
				return true
			}
		}
		return false
	}},
	{LabelGovernanceRisk, func(e *evidence) bool {
		return e.hasAny(taxonomy.GovernanceRiskTerms)
	}},
	{LabelBusinessStrategy, func(e *evidence) bool {
		return e.hasAny(taxonomy.BusinessStrategyTerms)
	}},
	{LabelLeadershipVerbs, func(e *evidence) bool {
		return leadershipVerbs.MatchString(e.achievementText)
	}},
	{LabelExecutiveScale, func(e *evidence) bool {
		return executiveScale.MatchString(e.achievementText) || executiveScale.MatchString(e.record.Summary)
	}},
	{LabelContact, func(e *evidence) bool {
		p := e.record.Profile
		return strings.TrimSpace(p.LinkedIn) != "" && strings.TrimSpace(p.Email) != "" && strings.TrimSpace(p.Phone) != ""
	}},
	{LabelQuantified, func(e *evidence) bool {
		n := 0
		for _, exp := range e.record.Experiences {
			for _, a := range exp.Achievements {
				if experience.HasMetric(a) {
					n++
				}
			}
		}
		return n >= MinQuantifiedAchievements
	}},
}

// Score runs every check against the record and returns the rounded percentage passed.
// A nil record scores zero with no checks; missing collections count as empty.
func Score(record *types.CareerRecord) *types.ATSScore {
	if record == nil {
		return &types.ATSScore{Score: 0, Checks: []types.ATSCheck{}}
	}

	e := gather(record)
	results := make([]types.ATSCheck, 0, len(Checks))
	passed := 0
	for _, check := range Checks {
		ok := check.pass(e)
		if ok {
			passed++
		}
		results = append(results, types.ATSCheck{Label: check.Label, Pass: ok})
	}

	return &types.ATSScore{
		Score:  int(math.Round(100 * float64(passed) / float64(len(Checks)))),
		Checks: results,
	}
}

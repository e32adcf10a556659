// Package parsing turns raw CV text into a structured career record. The deterministic parser
// is always available; an AI parser may be tried first with automatic fallback.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

// CertificationMinLength is the length a certification line must exceed
const CertificationMinLength = 4

var (
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	fieldSeparators  = []string{" in ", ", "}
	issuerSeparators = []string{" - ", " – ", " | "}
)

// Parse converts raw CV text into a career record. It never fails: absent patterns leave
// fields and collections empty, and the result always carries section scaffolding.
func Parse(rawText string) *types.CareerRecord {
	lines := SplitLines(rawText)
	sections := Segment(lines)

	record := types.NewCareerRecord()
	record.Profile = ExtractProfile(rawText, lines)
	record.Summary = strings.Join(sections.Lines(types.SectionSummary), " ")
	record.Experiences = ParseExperiences(sections.Lines(types.SectionExperience))
	record.Education = ParseEducation(sections.Lines(types.SectionEducation))
	record.Certifications = ParseCertifications(sections.Lines(types.SectionCertifications))
	record.Skills = ParseSkills(rawText, sections)

	record.Normalize()
	return record
}

// ParseEducation reads lines two at a time as (degree, institution). A year in either line
// fills the year and is removed from the text.
func ParseEducation(lines []string) []types.Education {
	entries := []types.Education{}
	for i := 0; i < len(lines); i += 2 {
		degreeLine, _ := stripBullet(lines[i])
		institutionLine := ""
		if i+1 < len(lines) {
			institutionLine, _ = stripBullet(lines[i+1])
		}

		year := yearPattern.FindString(degreeLine)
		if year == "" {
			year = yearPattern.FindString(institutionLine)
		}

		degree, field := splitOnFirst(stripYear(degreeLine), fieldSeparators)
		entries = append(entries, types.Education{
			ID:          types.NewID(),
			Degree:      degree,
			Field:       field,
			Institution: stripYear(institutionLine),
			Year:        year,
		})
	}
	return entries
}

// ParseCertifications makes one certification per line longer than CertificationMinLength
func ParseCertifications(lines []string) []types.Certification {
	certs := []types.Certification{}
	for _, line := range lines {
		text, _ := stripBullet(line)
		if len(text) <= CertificationMinLength {
			continue
		}
		year := yearPattern.FindString(text)
		name, issuer := splitOnFirst(stripYear(text), issuerSeparators)
		if name == "" {
			continue
		}
		certs = append(certs, types.Certification{
			ID:     types.NewID(),
			Name:   name,
			Issuer: issuer,
			Year:   year,
			Valid:  true,
		})
	}
	return certs
}

// ParseSkills buckets taxonomy skill keywords. Technical keywords are matched against the whole
// document; governance and leadership keywords against the skills section, or the whole
// document when there is no skills section.
func ParseSkills(rawText string, sections Sections) types.Skills {
	fullCorpus := Corpus(rawText)
	sectionCorpus := fullCorpus
	if sections.Has(types.SectionSkills) {
		sectionCorpus = Corpus(strings.Join(sections.Lines(types.SectionSkills), " "))
	}

	return types.Skills{
		Technical:  formatSkills(MatchKeywords(fullCorpus, taxonomy.TechnicalSkills)),
		Governance: formatSkills(MatchKeywords(sectionCorpus, taxonomy.GovernanceSkills)),
		Leadership: formatSkills(MatchKeywords(sectionCorpus, taxonomy.LeadershipSkills)),
	}
}

func formatSkills(keywords []string) []string {
	formatted := make([]string, 0, len(keywords))
	seen := make(map[string]bool)
	for _, kw := range keywords {
		skill := FormatSkill(kw)
		if skill != "" && !seen[skill] {
			formatted = append(formatted, skill)
			seen[skill] = true
		}
	}
	return formatted
}

// stripYear removes years and the separators left dangling around them
func stripYear(text string) string {
	text = yearPattern.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	return strings.Trim(text, " |,-–—()·•")
}

// splitOnFirst splits text on the first separator present, returning head and tail
func splitOnFirst(text string, separators []string) (string, string) {
	for _, sep := range separators {
		if idx := strings.Index(text, sep); idx > 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(sep):])
		}
	}
	return strings.TrimSpace(text), ""
}

package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/types"
)

// HeadingMaxLength is the longest line that can be read as a section heading. Longer lines
// are body text even when they start with a heading word.
const HeadingMaxLength = 40

type headingRule struct {
	section string
	pattern *regexp.Regexp
}

// headingRules are tested in order; the first match wins
var headingRules = []headingRule{
	{types.SectionSummary, regexp.MustCompile(`(?i)^((professional|executive|career|personal)\s+)?(summary|profile|statement|about me|overview|objective)\b`)},
	{types.SectionExperience, regexp.MustCompile(`(?i)^((professional|work|relevant|career)\s+)?(experience|employment|work history|career history)\b`)},
	{types.SectionEducation, regexp.MustCompile(`(?i)^(education|academic|qualifications)\b`)},
	{types.SectionCertifications, regexp.MustCompile(`(?i)^(certifications?|certificates|licen[cs]es|accreditations|professional (development|certifications?))\b`)},
	{types.SectionSkills, regexp.MustCompile(`(?i)^((key|core|technical)\s+)?(skills|competencies|expertise|capabilities)\b|^areas of expertise\b`)},
}

// dividerPattern matches decorative rule lines
var dividerPattern = regexp.MustCompile(`^[\s\-_=~*•·─━═—–]{3,}$`)

// Sections maps a section name to the content lines found under its heading
type Sections map[string][]string

// Lines returns the lines of a section, never nil
func (s Sections) Lines(section string) []string {
	if lines, ok := s[section]; ok {
		return lines
	}
	return []string{}
}

// Has reports whether a heading for the section was found
func (s Sections) Has(section string) bool {
	_, ok := s[section]
	return ok
}

// SplitLines splits raw text into trimmed, non-blank lines
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// IsDivider reports whether a line is a decorative divider
func IsDivider(line string) bool {
	return dividerPattern.MatchString(line)
}

// DetectHeading returns the section a line introduces, or "" when the line is not a heading
func DetectHeading(line string) string {
	if len(line) > HeadingMaxLength {
		return ""
	}
	candidate := strings.TrimSpace(strings.TrimLeft(line, "#*• "))
	for _, rule := range headingRules {
		if rule.pattern.MatchString(candidate) {
			return rule.section
		}
	}
	return ""
}

// Segment assigns each line to the section whose heading most recently preceded it.
// Heading lines and dividers are dropped, as are lines before the first heading.
func Segment(lines []string) Sections {
	sections := make(Sections)
	current := ""

	for _, line := range lines {
		if IsDivider(line) {
			continue
		}
		if section := DetectHeading(line); section != "" {
			current = section
			if _, ok := sections[current]; !ok {
				sections[current] = []string{}
			}
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

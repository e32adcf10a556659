package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/types"
)

// Experience block bounds
const (
	// RoleLineWindow is how many leading section lines may open an entry without a date
	RoleLineWindow = 3
	// RoleLineMaxLength is the longest line treated as a role or company header
	RoleLineMaxLength = 80
	// AchievementMinLength is the length a non-bullet line must exceed to count as an achievement
	AchievementMinLength = 20
	// headerLookahead is how far ahead a date line may sit below the header lines it belongs to
	headerLookahead = 2
	// headerMaxWords bounds header lines so short achievements are not read as company names
	headerMaxWords = 6
)

const monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`

var (
	dateRangePattern = regexp.MustCompile(`(?i)\b(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}\s*(?:-|–|—|to)\s*(?:(?:` + monthPattern + `\s+|\d{1,2}/)?(?:19|20)\d{2}|present|current|now|today|date)\b`)
	bulletPattern    = regexp.MustCompile(`^[•\-*–▪◦●·>]\s*`)
	headerSeparators = []string{" | ", " – ", " — ", " - ", ", "}
)

// stripBullet removes a leading bullet marker and reports whether one was present
func stripBullet(line string) (string, bool) {
	if loc := bulletPattern.FindStringIndex(line); loc != nil {
		return strings.TrimSpace(line[loc[1]:]), true
	}
	return line, false
}

// splitDateLine returns the date range in a line and the remaining header text
func splitDateLine(line string) (period, rest string, ok bool) {
	loc := dateRangePattern.FindStringIndex(line)
	if loc == nil {
		return "", "", false
	}
	period = strings.TrimSpace(line[loc[0]:loc[1]])
	rest = strings.TrimSpace(line[:loc[0]] + " " + line[loc[1]:])
	rest = strings.Trim(rest, " |,-–—()·•")
	return period, rest, true
}

// splitHeader splits "Role at Company, City" or "Role | Company | City" into its parts
func splitHeader(text string) []string {
	text = strings.Trim(strings.TrimSpace(text), " |,-–—()·•")
	if text == "" {
		return nil
	}
	if idx := strings.Index(strings.ToLower(text), " at "); idx > 0 {
		return append([]string{strings.TrimSpace(text[:idx])}, splitHeader(text[idx+4:])...)
	}
	for _, sep := range headerSeparators {
		if !strings.Contains(text, sep) {
			continue
		}
		parts := make([]string, 0)
		for _, part := range strings.Split(text, sep) {
			if part = strings.Trim(strings.TrimSpace(part), " |,-–—()·•"); part != "" {
				parts = append(parts, part)
			}
		}
		return parts
	}
	return []string{text}
}

// fillHeader assigns header parts to the first empty of role, company and location
func fillHeader(exp *types.Experience, parts []string) {
	for _, part := range parts {
		switch {
		case exp.Role == "":
			exp.Role = part
		case exp.Company == "":
			exp.Company = part
		case exp.Location == "":
			exp.Location = part
		}
	}
}

func headerComplete(exp *types.Experience) bool {
	return exp.Role != "" && exp.Company != "" && exp.Location != ""
}

// looksLikeHeader accepts short lines that read like a title or organisation, not a sentence
func looksLikeHeader(text string) bool {
	if len(text) > RoleLineMaxLength || strings.HasSuffix(text, ".") {
		return false
	}
	if len(strings.Fields(text)) > headerMaxWords {
		return false
	}
	return experience.ExtractMetrics(text) == ""
}

// startsLowercase reports whether a line continues a wrapped sentence
func startsLowercase(text string) bool {
	for _, r := range text {
		return unicode.IsLower(r)
	}
	return false
}

// experienceParser walks the experience section line by line
type experienceParser struct {
	lines   []string
	isDate  []bool
	bullet  []bool
	texts   []string
	entries []types.Experience
	current *types.Experience
	pending []string
}

// ParseExperiences builds experience entries from the experience section lines. A date range
// line or a role line near the top of the section opens an entry; bullet lines and long lines
// become achievements of the open entry. Short lines directly above a date line are read as
// that entry's header.
func ParseExperiences(lines []string) []types.Experience {
	p := &experienceParser{
		lines:   lines,
		isDate:  make([]bool, len(lines)),
		bullet:  make([]bool, len(lines)),
		texts:   make([]string, len(lines)),
		entries: []types.Experience{},
	}
	for i, line := range lines {
		p.texts[i], p.bullet[i] = stripBullet(line)
		_, _, p.isDate[i] = splitDateLine(p.texts[i])
	}

	for i := range lines {
		p.consume(i)
	}
	p.flush()
	return p.entries
}

func (p *experienceParser) consume(i int) {
	text := p.texts[i]
	if text == "" {
		return
	}

	if p.isDate[i] && !p.bullet[i] {
		period, rest, _ := splitDateLine(text)
		p.startOrDate(period, rest)
		return
	}

	if !p.bullet[i] && looksLikeHeader(text) && p.headerBeforeDate(i) {
		p.pending = append(p.pending, text)
		return
	}

	if p.current == nil && !p.bullet[i] && i < RoleLineWindow && looksLikeHeader(text) && roleKeyword.MatchString(text) {
		p.open()
		fillHeader(p.current, splitHeader(text))
		return
	}

	if p.current != nil && len(p.current.Achievements) == 0 && !p.bullet[i] && looksLikeHeader(text) && !headerComplete(p.current) {
		fillHeader(p.current, splitHeader(text))
		return
	}

	if p.current != nil && !p.bullet[i] && len(p.current.Achievements) > 0 && startsLowercase(text) {
		p.extendLastAchievement(text)
		return
	}

	if p.bullet[i] || len(text) > AchievementMinLength {
		if p.current == nil {
			p.open()
		}
		p.current.Achievements = append(p.current.Achievements, experience.NewAchievement(text))
	}
}

// headerBeforeDate reports whether a date line follows within headerLookahead lines with only
// non-bullet lines in between
func (p *experienceParser) headerBeforeDate(i int) bool {
	for j := i + 1; j < len(p.lines) && j <= i+headerLookahead; j++ {
		if p.bullet[j] {
			return false
		}
		if p.isDate[j] {
			return true
		}
	}
	return false
}

// startOrDate handles a date line: it dates the open entry when that entry has neither a
// period nor achievements and no header lines are waiting; otherwise it opens a new entry
func (p *experienceParser) startOrDate(period, rest string) {
	reuse := p.current != nil && p.current.Period == "" && len(p.current.Achievements) == 0 && len(p.pending) == 0
	if !reuse {
		p.open()
	}
	p.current.Period = period
	fillHeader(p.current, splitHeader(rest))
}

// open flushes the current entry and starts a new one, consuming pending header lines
func (p *experienceParser) open() {
	p.flush()
	p.current = &types.Experience{
		ID:           types.NewID(),
		Achievements: []types.Achievement{},
	}
	for _, header := range p.pending {
		fillHeader(p.current, splitHeader(header))
	}
	p.pending = nil
}

func (p *experienceParser) flush() {
	if p.current == nil {
		return
	}
	p.entries = append(p.entries, *p.current)
	p.current = nil
}

func (p *experienceParser) extendLastAchievement(text string) {
	last := &p.current.Achievements[len(p.current.Achievements)-1]
	extended := experience.NewAchievement(last.Text + " " + text)
	extended.ID = last.ID
	*last = extended
}

package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/cv-workbench/internal/types"
)

// Profile search bounds
const (
	NameSearchLines  = 6
	NameMinLength    = 4
	NameMaxLength    = 49
	TitleSearchLines = 10
	TitleMaxLength   = 80
	MinPhoneDigits   = 9
)

var (
	emailPattern    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\(?\d[\d ().-]{7,16}\d`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_%-]+`)
	locationPattern = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:[ -][A-Z][a-zA-Z]+)*),\s*([A-Z][a-zA-Z]+(?:[ -][A-Z][a-zA-Z]+)*)\b`)
	roleKeyword     = regexp.MustCompile(`(?i:\b(manager|director|head|lead|leader|officer|executive|chief|cio|cto|ciso|vp|vice president|consultant|architect|engineer|administrator|analyst|specialist|technology|infrastructure|governance|digital|operations|programme|program|transformation)\b)|\b(IT|ICT)\b`)
	urlHint         = regexp.MustCompile(`(?i)(https?://|www\.|linkedin|github\.com)`)
	documentLabel   = regexp.MustCompile(`(?i)^(curriculum vitae|resume|résumé|cv)$`)
)

// ExtractProfile fills contact fields from the whole text and name/title from the top lines
func ExtractProfile(text string, lines []string) types.Profile {
	profile := types.Profile{
		Email:    emailPattern.FindString(text),
		Phone:    extractPhone(text),
		LinkedIn: extractLinkedIn(text),
	}

	nameIdx := -1
	for i := 0; i < len(lines) && i < NameSearchLines; i++ {
		if looksLikeName(lines[i]) {
			profile.Name = lines[i]
			nameIdx = i
			break
		}
	}

	for i := 0; i < len(lines) && i < TitleSearchLines; i++ {
		if i == nameIdx {
			continue
		}
		line := lines[i]
		if len(line) >= TitleMaxLength || looksLikeContact(line) || DetectHeading(line) != "" {
			continue
		}
		if title := firstRoleSegment(line); title != "" {
			profile.Title = title
			break
		}
	}

	profile.Location = extractLocation(lines, nameIdx)
	return profile
}

// looksLikeName accepts a length-bounded line that carries no contact details, digits or heading
func looksLikeName(line string) bool {
	if len(line) < NameMinLength || len(line) > NameMaxLength {
		return false
	}
	if looksLikeContact(line) || DetectHeading(line) != "" || IsDivider(line) || documentLabel.MatchString(line) {
		return false
	}
	for _, r := range line {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// splitHeaderSegments splits a header line on the separators CVs use between contact fields
func splitHeaderSegments(line string) []string {
	segments := strings.FieldsFunc(line, func(r rune) bool {
		return r == '|' || r == '•' || r == '·'
	})
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	return segments
}

// firstRoleSegment returns the first header segment naming a role
func firstRoleSegment(line string) string {
	for _, segment := range splitHeaderSegments(line) {
		if segment != "" && roleKeyword.MatchString(segment) {
			return segment
		}
	}
	return ""
}

func looksLikeContact(line string) bool {
	return strings.Contains(line, "@") || urlHint.MatchString(line) || extractPhone(line) != ""
}

// extractPhone returns the first loose phone match carrying at least MinPhoneDigits digits
func extractPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range candidate {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits >= MinPhoneDigits {
			return strings.TrimSpace(candidate)
		}
	}
	return ""
}

// extractLinkedIn returns the profile path without scheme or host prefix, e.g. linkedin.com/in/alex
func extractLinkedIn(text string) string {
	match := linkedInPattern.FindString(text)
	if match == "" {
		return ""
	}
	return "linkedin.com/in/" + match[len("linkedin.com/in/"):]
}

// extractLocation searches the header lines first, then the rest of the text. The name line and
// segments naming a role are skipped since "Head of IT, Governance" has the same shape as a place.
func extractLocation(lines []string, nameIdx int) string {
	find := func(from, to int) string {
		for i := from; i < to && i < len(lines); i++ {
			if i == nameIdx {
				continue
			}
			for _, segment := range splitHeaderSegments(lines[i]) {
				if roleKeyword.MatchString(segment) || strings.Contains(segment, "@") {
					continue
				}
				if m := locationPattern.FindString(segment); m != "" {
					return m
				}
			}
		}
		return ""
	}

	if loc := find(0, TitleSearchLines); loc != "" {
		return loc
	}
	return find(TitleSearchLines, len(lines))
}

package rewriting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/voice"
)

// lengthTolerancePercent is how far a rewrite may drift from the original length
const lengthTolerancePercent = 0.5

// figurePattern matches a number, keeping decimal and thousands separators
var figurePattern = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// StyleChecksResult holds the results of style validation for one rewritten achievement
type StyleChecksResult struct {
	StrongVerb     bool
	NoNewFigures   bool
	NoBuzzwords    bool
	TargetLength   bool
	InventedFigure []string
}

// ValidateStyle checks a rewrite against its original: opening verb, invented numbers,
// buzzwords and length drift
func ValidateStyle(original, rewritten, mode string) StyleChecksResult {
	invented := inventedFigures(original, rewritten)
	return StyleChecksResult{
		StrongVerb:     checkStrongVerb(rewritten, mode),
		NoNewFigures:   len(invented) == 0,
		NoBuzzwords:    len(checkForbiddenPhrasesInText(rewritten, taxonomy.Buzzwords)) == 0,
		TargetLength:   checkTargetLength(len(rewritten), len(original)),
		InventedFigure: invented,
	}
}

// checkStrongVerb reports whether the text opens with a bank verb or another past-tense verb
func checkStrongVerb(text, mode string) bool {
	opener := voice.Opener(text)
	if opener == "" {
		return false
	}
	for _, verb := range taxonomy.Verbs(mode) {
		if opener == verb {
			return true
		}
	}
	// Past-tense openers are usually action verbs
	return strings.HasSuffix(opener, "ed") && len(opener) > 3
}

// inventedFigures returns numbers present in the rewrite but absent from the original
func inventedFigures(original, rewritten string) []string {
	known := make(map[string]bool)
	for _, f := range figurePattern.FindAllString(original, -1) {
		known[f] = true
	}

	var invented []string
	seen := make(map[string]bool)
	for _, f := range figurePattern.FindAllString(rewritten, -1) {
		if !known[f] && !seen[f] {
			invented = append(invented, f)
			seen[f] = true
		}
	}
	return invented
}

// checkTargetLength checks if rewritten text length is within tolerance of the original
func checkTargetLength(rewrittenLength, originalLength int) bool {
	if originalLength == 0 {
		return rewrittenLength > 0
	}

	tolerance := float64(originalLength) * lengthTolerancePercent
	minLength := float64(originalLength) - tolerance
	maxLength := float64(originalLength) + tolerance
	return float64(rewrittenLength) >= minLength && float64(rewrittenLength) <= maxLength
}

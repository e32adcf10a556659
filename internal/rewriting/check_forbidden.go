package rewriting

import (
	"strings"

	"github.com/jonathan/cv-workbench/internal/types"
)

// checkForbiddenPhrasesInText checks plain text for forbidden phrases.
// Returns the phrases found (case-insensitive), or nil.
func checkForbiddenPhrasesInText(text string, phrases []string) []string {
	if len(phrases) == 0 {
		return nil
	}

	normalizedText := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)
	for _, phrase := range phrases {
		normalizedPhrase := strings.ToLower(strings.TrimSpace(phrase))
		if normalizedPhrase == "" || seen[normalizedPhrase] {
			continue
		}
		if strings.Contains(normalizedText, normalizedPhrase) {
			found = append(found, phrase)
			seen[normalizedPhrase] = true
		}
	}
	return found
}

// CheckForbiddenPhrases checks every achievement for forbidden phrases.
// Returns a map of achievement id to the phrases found; achievements without hits are omitted.
func CheckForbiddenPhrases(achievements []types.Achievement, phrases []string) map[string][]string {
	result := make(map[string][]string)
	if len(phrases) == 0 {
		return result
	}

	for _, a := range achievements {
		if found := checkForbiddenPhrasesInText(a.Text, phrases); len(found) > 0 {
			result[a.ID] = found
		}
	}
	return result
}

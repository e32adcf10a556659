// Package voice holds the rule-based tone heuristics applied to achievement text: verb strength
// scoring, verb suggestions and lexical integrity checks.
package voice

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

// toneVerbSaturation is the number of bank verbs at which the tone score reaches 100
const toneVerbSaturation = 3

// ScoreToneVerbs counts the mode's bank verbs that appear in the text and scales the count to
// 0-100, saturating at three matches
func ScoreToneVerbs(text, mode string) int {
	lower := strings.ToLower(text)
	matches := 0
	for _, verb := range taxonomy.Verbs(mode) {
		if strings.Contains(lower, verb) {
			matches++
		}
	}
	return int(math.Min(100, math.Round(100*float64(matches)/toneVerbSaturation)))
}

// SuggestToneVerb proposes a stronger opening verb for the text. It returns nil for empty text
// and for text that already opens with one of the mode's verbs.
func SuggestToneVerb(text, mode string) *types.VerbSuggestion {
	lower := strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(lower)
	if len(words) == 0 {
		return nil
	}

	bank := taxonomy.Verbs(mode)
	opener := trimWord(words[0])
	for _, verb := range bank {
		if opener == verb {
			return nil
		}
	}

	original, weak := weakPhrase(lower)
	if !weak {
		original = strings.Join(words[:min(2, len(words))], " ")
	}

	suggestion := bank[0]
	for _, verb := range bank {
		if !strings.Contains(lower, verb) {
			suggestion = verb
			break
		}
	}

	reason := fmt.Sprintf("Open with a strong %s verb instead of %q", modeName(mode), original)
	if weak {
		reason = fmt.Sprintf("%q is a passive opener; %q shows ownership for %s positioning", original, suggestion, modeName(mode))
	}

	return &types.VerbSuggestion{
		Original:   original,
		Suggestion: suggestion,
		Reason:     reason,
	}
}

// weakPhrase returns the weak phrase the lowercased text starts with, if any
func weakPhrase(lower string) (string, bool) {
	for _, phrase := range taxonomy.WeakPhrases {
		if strings.HasPrefix(lower, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func modeName(mode string) string {
	if _, ok := taxonomy.VerbBanks[mode]; ok {
		return mode
	}
	return taxonomy.VerbModeHybrid
}

// trimWord strips surrounding punctuation from a single word
func trimWord(word string) string {
	return strings.Trim(word, ".,!?;:\"'()[]")
}

// Opener returns the lowercased first word of the text, or "" for blank text
func Opener(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return ""
	}
	return trimWord(words[0])
}

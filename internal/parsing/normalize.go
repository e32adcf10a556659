package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/cv-workbench/internal/taxonomy"
)

// Tokenize lowercases text, replaces every rune that is not a letter, digit or hyphen with a
// space and splits on whitespace
func Tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return ' '
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

// Corpus returns the tokens of text joined by single spaces, used for substring containment
func Corpus(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// NormalizeKeyword passes a keyword through the tokenizer so it compares equal to corpus text
func NormalizeKeyword(keyword string) string {
	return Corpus(keyword)
}

// ContainsKeyword reports whether a keyword occurs in a corpus built by Corpus. Matching is
// plain substring containment, so "api" matches "capital" and multi-word phrases match.
func ContainsKeyword(corpus, keyword string) bool {
	normalized := NormalizeKeyword(keyword)
	if normalized == "" || corpus == "" {
		return false
	}
	return strings.Contains(corpus, normalized)
}

// MatchKeywords returns the keywords present in corpus, in input order, deduplicated
func MatchKeywords(corpus string, keywords []string) []string {
	matched := make([]string, 0)
	seen := make(map[string]bool)
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		if ContainsKeyword(corpus, kw) {
			matched = append(matched, kw)
			seen[kw] = true
		}
	}
	return matched
}

// FormatSkill applies canonical casing to a skill keyword: known acronyms map to their fixed
// form, everything else is title-cased word by word
func FormatSkill(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	if canonical, ok := taxonomy.CanonicalAcronym(keyword); ok {
		return canonical
	}

	words := strings.Fields(strings.ToLower(keyword))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

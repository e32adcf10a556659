package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"punctuation stripped", "ITIL, Azure, and governance.", []string{"itil", "azure", "and", "governance"}},
		{"hyphen preserved", "30-person team", []string{"30-person", "team"}},
		{"slash splits", "CI/CD pipelines", []string{"ci", "cd", "pipelines"}},
		{"unicode letters kept", "Zürich office", []string{"zürich", "office"}},
		{"empty", "   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCorpus(t *testing.T) {
	assert.Equal(t, "seeking a head of it with itil", Corpus("Seeking a Head of IT, with ITIL!"))
}

func TestContainsKeyword(t *testing.T) {
	corpus := Corpus("Head of IT with ITIL, Azure, CI/CD and P&L ownership; rapid delivery")
	tests := []struct {
		keyword string
		want    bool
	}{
		{"itil", true},
		{"head of", true},
		{"ci/cd", true},
		{"p&l", true},
		{"azure", true},
		{"api", true}, // inside "rapid"
		{"governance", false},
		{"deliver", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsKeyword(corpus, tt.keyword))
		})
	}
	assert.False(t, ContainsKeyword("", "itil"))
}

func TestContainsKeyword_ShortKeywordsMatchInsideWords(t *testing.T) {
	corpus := Corpus("Manage capital plans and translate laws for the sapphire programme")
	for _, kw := range []string{"api", "lan", "sla", "aws", "sap"} {
		t.Run(kw, func(t *testing.T) {
			assert.True(t, ContainsKeyword(corpus, kw))
		})
	}
	assert.Equal(t, []string{"sap", "aws"}, MatchKeywords(corpus, []string{"sap", "gcp", "aws"}))
}

func TestMatchKeywords(t *testing.T) {
	corpus := Corpus("Azure and AWS migration")
	got := MatchKeywords(corpus, []string{"aws", "gcp", "azure", "aws"})
	assert.Equal(t, []string{"aws", "azure"}, got)
	assert.NotNil(t, MatchKeywords("", []string{"aws"}))
}

func TestFormatSkill(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"aws", "AWS"},
		{"ci/cd", "CI/CD"},
		{"Azure", "Azure"},
		{"iso 27001", "ISO 27001"},
		{"risk management", "Risk Management"},
		{"stakeholder MANAGEMENT", "Stakeholder Management"},
		{"python", "Python"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSkill(tt.input))
		})
	}
}

package rewriting

import (
	"testing"

	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCheckForbiddenPhrasesInText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		phrases []string
		want    []string
	}{
		{"no phrases", "anything", nil, nil},
		{"case insensitive", "Drove SYNERGY across teams", []string{"synergy"}, []string{"synergy"}},
		{"keeps caller spelling", "a world-class team", []string{"World-Class"}, []string{"World-Class"}},
		{"deduplicated", "synergy synergy", []string{"synergy", "Synergy"}, []string{"synergy"}},
		{"blank phrase skipped", "text", []string{"  "}, nil},
		{"none found", "Delivered on time", []string{"synergy"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkForbiddenPhrasesInText(tt.text, tt.phrases))
		})
	}
}

func TestCheckForbiddenPhrases(t *testing.T) {
	achievements := []types.Achievement{
		{ID: "a1", Text: "Leveraged cloud"},
		{ID: "a2", Text: "Cut costs"},
	}

	result := CheckForbiddenPhrases(achievements, []string{"leverage"})
	assert.Equal(t, map[string][]string{"a1": {"leverage"}}, result)
	assert.Empty(t, CheckForbiddenPhrases(achievements, nil))
}

package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		file     string
		key      string
		contains string
	}{
		{"parsing.json", "extract-career-record", "{{.CVText}}"},
		{"analysis.json", "analyze-job-description", "gapSuggestions"},
		{"analysis.json", "suggest-gap-bullets", "{{.Keyword}}"},
		{"rewriting.json", "rewrite-achievements", "Keep every id exactly as given"},
	}

	for _, tt := range tests {
		t.Run(tt.file+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestGet_Errors(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt file")

	_, err = Get("parsing.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing.json:nonexistent-key not found")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{
			name:     "fills placeholders",
			template: "Rewrite for {{.Mode}} using {{.Verbs}}",
			data:     map[string]string{"Mode": "governance", "Verbs": "Led, Governed"},
			want:     "Rewrite for governance using Led, Governed",
		},
		{
			name:     "missing value leaves placeholder",
			template: "CV: {{.CVText}}",
			data:     map[string]string{},
			want:     "CV: {{.CVText}}",
		},
		{
			name:     "placeholder inside value is not expanded",
			template: "{{.CVText}} / {{.Mode}}",
			data:     map[string]string{"CVText": "literal {{.Mode}}", "Mode": "hybrid"},
			want:     "literal {{.Mode}} / hybrid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	prompt, err := Render("parsing.json", "extract-career-record", map[string]string{"CVText": "Jane Doe {{.Name}}"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Jane Doe {{.Name}}")

	_, err = Render("rewriting.json", "rewrite-achievements", map[string]string{"Mode": "hybrid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AchievementsJSON")
}

func TestKeys(t *testing.T) {
	keys, err := Keys("analysis.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"analyze-job-description", "suggest-gap-bullets"}, keys)

	_, err = Keys("missing.json")
	assert.Error(t, err)
}

func TestLoad_ReadsEveryFile(t *testing.T) {
	c, err := load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"analysis.json", "parsing.json", "rewriting.json"}, keysOf(c))
}

func keysOf(c catalog) []string {
	var out []string
	for name := range c {
		out = append(out, name)
	}
	return out
}

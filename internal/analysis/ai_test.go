package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func testOptions() llm.GenerateOptions {
	opts := llm.DefaultGenerateOptions(llm.TierStandard, true)
	opts.MaxRetries = 0
	opts.Timeout = time.Second
	return opts
}

const aiAnalysisJSON = `{
  "matchScore": 90,
  "topKeywords": ["Governance", "ITIL", "azure", "itil"],
  "presentKeywords": ["itil", "azure", "kubernetes"],
  "missingKeywords": [],
  "categoryScores": {"governance": 2, "made-up": 5},
  "topCategories": ["governance", "made-up"],
  "suggestedPositioning": "governance",
  "tagEmphasis": ["Governance", "Synergy"],
  "wordCount": 3,
  "gapSuggestions": {"Governance": ["Chaired the IT steering committee"], "itil": ["Rolled out ITIL"]}
}`

func TestAnalyzeWithAI_Reconciles(t *testing.T) {
	client := &fakeClient{response: "```json\n" + aiAnalysisJSON + "\n```"}

	result, err := AnalyzeWithAI(context.Background(), client, headOfITJD, skillsOnlyRecord(), testOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"governance", "itil", "azure"}, result.TopKeywords)
	assert.Equal(t, []string{"itil", "azure"}, result.PresentKeywords)
	assert.Equal(t, []string{"governance"}, result.MissingKeywords)
	assert.Equal(t, 67, result.MatchScore)

	assert.Equal(t, 2, result.CategoryScores["governance"])
	assert.Equal(t, 2, result.CategoryScores["leadership"])
	assert.NotContains(t, result.CategoryScores, "made-up")
	assert.Equal(t, []string{"governance"}, result.TopCategories)

	assert.Equal(t, []string{"Governance"}, result.TagEmphasis)
	assert.Equal(t, 15, result.WordCount)
	assert.Equal(t, map[string][]string{"governance": {"Chaired the IT steering committee"}}, result.GapSuggestions)
	assert.Equal(t, types.SourceAI, result.Source)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "azure itil")
	assert.Contains(t, client.prompts[0], "governance, itil, azure, head of, team")
}

func TestAnalyzeWithAI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client llm.Client
	}{
		{"nil client", nil},
		{"provider failure", &fakeClient{err: errors.New("rate limited")}},
		{"not json", &fakeClient{response: "I think the match is good."}},
		{"bad positioning", &fakeClient{response: `{"matchScore": 10, "presentKeywords": [], "missingKeywords": [], "categoryScores": {}, "suggestedPositioning": "visionary", "tagEmphasis": []}`}},
		{"score out of range", &fakeClient{response: `{"matchScore": 140, "presentKeywords": [], "missingKeywords": [], "categoryScores": {}, "suggestedPositioning": "hybrid", "tagEmphasis": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AnalyzeWithAI(context.Background(), tt.client, headOfITJD, skillsOnlyRecord(), testOptions())
			assert.Nil(t, result)

			var aiErr *AIAnalysisError
			assert.ErrorAs(t, err, &aiErr)
		})
	}
}

func TestAnalyzeWithFallback(t *testing.T) {
	t.Run("no client", func(t *testing.T) {
		result, source, err := AnalyzeWithFallback(context.Background(), nil, headOfITJD, skillsOnlyRecord(), testOptions())
		require.NoError(t, err)
		assert.Equal(t, types.SourceHeuristic, source)
		assert.Equal(t, 40, result.MatchScore)
	})

	t.Run("invalid AI response falls back", func(t *testing.T) {
		client := &fakeClient{response: `{"matchScore": "high"}`}
		result, source, err := AnalyzeWithFallback(context.Background(), client, headOfITJD, skillsOnlyRecord(), testOptions())
		require.NoError(t, err)
		assert.Equal(t, types.SourceHeuristic, source)
		assert.Equal(t, types.ModeGovernance, result.SuggestedPositioning)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("AI success", func(t *testing.T) {
		client := &fakeClient{response: aiAnalysisJSON}
		result, source, err := AnalyzeWithFallback(context.Background(), client, headOfITJD, skillsOnlyRecord(), testOptions())
		require.NoError(t, err)
		assert.Equal(t, types.SourceAI, source)
		assert.Equal(t, types.SourceAI, result.Source)
	})

	t.Run("too short skips the AI call", func(t *testing.T) {
		client := &fakeClient{response: aiAnalysisJSON}
		result, _, err := AnalyzeWithFallback(context.Background(), client, "Head of IT", skillsOnlyRecord(), testOptions())
		assert.Nil(t, result)

		var tooShort *TooShortError
		assert.ErrorAs(t, err, &tooShort)
		assert.Equal(t, 0, client.calls)
	})
}

func TestSuggestGapBullets(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		client := &fakeClient{response: `["Chaired the IT steering committee [quarterly]", "Introduced a COBIT-aligned control framework"]`}
		bullets, err := SuggestGapBullets(context.Background(), client, "governance", types.ModeGovernance, testOptions())
		require.NoError(t, err)
		assert.Len(t, bullets, 2)
		assert.Contains(t, client.prompts[0], `"governance"`)
	})

	t.Run("object rejected", func(t *testing.T) {
		client := &fakeClient{response: `{"bullets": ["x"]}`}
		_, err := SuggestGapBullets(context.Background(), client, "governance", types.ModeGovernance, testOptions())
		var aiErr *AIAnalysisError
		assert.ErrorAs(t, err, &aiErr)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := SuggestGapBullets(context.Background(), nil, "governance", types.ModeHybrid, testOptions())
		assert.ErrorIs(t, err, llm.ErrNoClient)
	})
}

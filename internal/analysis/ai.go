package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/observability"
	"github.com/jonathan/cv-workbench/internal/prompts"
	"github.com/jonathan/cv-workbench/internal/schemas"
	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

// AnalyzeWithAI asks the AI collaborator for an analysis and validates it against the
// jd_analysis schema. Keyword partitions, scores and tags are reconciled with the taxonomy
// so the result keeps the same guarantees as Analyze.
func AnalyzeWithAI(ctx context.Context, client llm.Client, jdText string, record *types.CareerRecord, opts llm.GenerateOptions) (*types.JDAnalysis, error) {
	base, err := Analyze(jdText, record)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, &AIAnalysisError{Message: "AI client is required", Cause: llm.ErrNoClient}
	}

	cvCorpus := CVCorpus(record)
	prompt, err := prompts.Render("analysis.json", "analyze-job-description", map[string]string{
		"JDText":     strings.TrimSpace(jdText),
		"CVCorpus":   cvCorpus,
		"Categories": strings.Join(taxonomy.CategoryNames(), ", "),
		"Keywords":   strings.Join(base.TopKeywords, ", "),
	})
	if err != nil {
		return nil, &AIAnalysisError{Message: "failed to build prompt", Cause: err}
	}

	responseText, err := llm.Generate(ctx, client, prompt, opts)
	if err != nil {
		return nil, &AIAnalysisError{Message: "failed to generate content", Cause: err}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.JDAnalysis, responseText); err != nil {
		return nil, &AIAnalysisError{Message: "response does not match analysis schema", Cause: err}
	}

	var result types.JDAnalysis
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, &AIAnalysisError{Message: "failed to parse JSON response", Cause: err}
	}

	reconcile(&result, base)
	return &result, nil
}

// reconcile repairs an AI analysis so present and missing partition topKeywords exactly
// and every tag and category comes from the taxonomy
func reconcile(result, base *types.JDAnalysis) {
	top := normalizeKeywords(result.TopKeywords)
	if len(top) == 0 {
		top = normalizeKeywords(append(append([]string{}, result.PresentKeywords...), result.MissingKeywords...))
	}
	if len(top) == 0 {
		top = base.TopKeywords
	}

	evidenced := make(map[string]bool)
	for _, kw := range normalizeKeywords(result.PresentKeywords) {
		evidenced[kw] = true
	}
	present := make([]string, 0, len(top))
	missing := make([]string, 0, len(top))
	for _, kw := range top {
		if evidenced[kw] {
			present = append(present, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	result.TopKeywords = top
	result.PresentKeywords = present
	result.MissingKeywords = missing
	result.MatchScore = MatchScore(len(present), len(top))

	scores := make(map[string]int, len(base.CategoryScores))
	for _, name := range taxonomy.CategoryNames() {
		if v, ok := result.CategoryScores[name]; ok {
			scores[name] = v
		} else {
			scores[name] = base.CategoryScores[name]
		}
	}
	result.CategoryScores = scores

	categories := make([]string, 0, TopCategoryCount)
	for _, c := range result.TopCategories {
		if len(taxonomy.Keywords(c)) > 0 && len(categories) < TopCategoryCount {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = base.TopCategories
	}
	result.TopCategories = categories

	result.TagEmphasis = experience.FilterTags(result.TagEmphasis)
	result.WordCount = base.WordCount

	if len(result.GapSuggestions) > 0 {
		gaps := make(map[string][]string, len(missing))
		for _, kw := range missing {
			for key, bullets := range result.GapSuggestions {
				if normalizeKeyword(key) == kw && len(bullets) > 0 {
					gaps[kw] = bullets
				}
			}
		}
		result.GapSuggestions = gaps
	}
	result.Source = types.SourceAI
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool)
	for _, kw := range keywords {
		kw = normalizeKeyword(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) == MaxTopKeywords {
			break
		}
	}
	return out
}

// AnalyzeWithFallback uses the AI analyzer when a client is configured and falls back to
// Analyze on any AI failure. A description that is too short is an error on both paths.
// The second return value is the source of the analysis.
func AnalyzeWithFallback(ctx context.Context, client llm.Client, jdText string, record *types.CareerRecord, opts llm.GenerateOptions) (*types.JDAnalysis, string, error) {
	if client == nil {
		result, err := Analyze(jdText, record)
		return result, types.SourceHeuristic, err
	}

	result, err := AnalyzeWithAI(ctx, client, jdText, record, opts)
	if err == nil {
		return result, types.SourceAI, nil
	}

	var tooShort *TooShortError
	if errors.As(err, &tooShort) {
		return nil, types.SourceHeuristic, err
	}

	observability.LoggerFromContext(ctx).Warn("AI analysis failed, using heuristic analyzer",
		slog.String("model", client.GetModel(opts.Tier)),
		slog.Any("error", err),
		slog.String("fallback", types.SourceHeuristic))

	result, err = Analyze(jdText, record)
	return result, types.SourceHeuristic, err
}

// SuggestGapBullets asks the AI collaborator for bullet ideas evidencing a missing keyword
func SuggestGapBullets(ctx context.Context, client llm.Client, keyword string, mode types.PositioningMode, opts llm.GenerateOptions) ([]string, error) {
	if client == nil {
		return nil, &AIAnalysisError{Message: "AI client is required", Cause: llm.ErrNoClient}
	}

	prompt, err := prompts.Render("analysis.json", "suggest-gap-bullets", map[string]string{
		"Mode":    string(mode),
		"Keyword": keyword,
	})
	if err != nil {
		return nil, &AIAnalysisError{Message: "failed to build prompt", Cause: err}
	}

	responseText, err := llm.Generate(ctx, client, prompt, opts)
	if err != nil {
		return nil, &AIAnalysisError{Message: "failed to generate content", Cause: err}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.GapBullets, responseText); err != nil {
		return nil, &AIAnalysisError{Message: "response is not a list of bullets", Cause: err}
	}

	var bullets []string
	if err := json.Unmarshal([]byte(responseText), &bullets); err != nil {
		return nil, &AIAnalysisError{Message: "failed to parse JSON response", Cause: err}
	}
	return bullets, nil
}

package parsing

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/observability"
	"github.com/jonathan/cv-workbench/internal/prompts"
	"github.com/jonathan/cv-workbench/internal/schemas"
	"github.com/jonathan/cv-workbench/internal/types"
)

// ParseWithAI extracts a career record with the AI collaborator. The response must validate
// against the career record schema; ids are minted locally and never taken from the model.
func ParseWithAI(ctx context.Context, client llm.Client, rawText string, opts llm.GenerateOptions) (*types.CareerRecord, error) {
	if client == nil {
		return nil, &APICallError{Step: "client", Message: "AI client is required", Cause: llm.ErrNoClient}
	}

	prompt, err := prompts.Render("parsing.json", "extract-career-record", map[string]string{
		"CVText": rawText,
	})
	if err != nil {
		return nil, &APICallError{Step: "prompt", Message: "failed to build prompt", Cause: err}
	}

	responseText, err := llm.Generate(ctx, client, prompt, opts)
	if err != nil {
		return nil, &APICallError{Step: "generate", Message: "failed to generate content", Cause: err}
	}

	// Clean markdown code blocks if present
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.CareerRecord, responseText); err != nil {
		return nil, &ParseError{Schema: schemas.CareerRecord, Message: "response does not match", Cause: err}
	}

	var record types.CareerRecord
	if err := json.Unmarshal([]byte(responseText), &record); err != nil {
		return nil, &ParseError{Message: "failed to decode JSON", Cause: err}
	}

	if err := postProcessRecord(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// postProcessRecord replaces model-supplied ids, restores scaffolding and rejects empty results
func postProcessRecord(record *types.CareerRecord) error {
	for i := range record.Experiences {
		record.Experiences[i].ID = ""
		for j := range record.Experiences[i].Achievements {
			record.Experiences[i].Achievements[j].ID = ""
		}
	}
	for i := range record.Education {
		record.Education[i].ID = ""
	}
	for i := range record.Certifications {
		record.Certifications[i].ID = ""
	}
	record.SectionOrder = nil
	record.SectionVisibility = nil

	if err := experience.NormalizeCareerRecord(record); err != nil {
		return &ValidationError{Field: "record", Message: "normalization failed", Cause: err}
	}

	if record.Profile.Name == "" && len(record.Experiences) == 0 && record.Summary == "" {
		return &ValidationError{Field: "record", Message: "response contains no profile, summary or experience"}
	}
	return nil
}

// ParseWithFallback tries the AI parser when a client is configured and falls back to the
// deterministic parser on any failure. The second return value is the source that produced
// the record: "ai" or "heuristic".
func ParseWithFallback(ctx context.Context, client llm.Client, rawText string, opts llm.GenerateOptions) (*types.CareerRecord, string) {
	if client == nil {
		return Parse(rawText), types.SourceHeuristic
	}

	record, err := ParseWithAI(ctx, client, rawText, opts)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("AI parsing failed, using heuristic parser",
			slog.String("model", client.GetModel(opts.Tier)),
			slog.Any("error", err),
			slog.String("fallback", types.SourceHeuristic))
		return Parse(rawText), types.SourceHeuristic
	}
	return record, types.SourceAI
}

// Package rewriting rewrites career record achievements with the AI collaborator while keeping
// every achievement id stable.
package rewriting

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/llm"
	"github.com/jonathan/cv-workbench/internal/prompts"
	"github.com/jonathan/cv-workbench/internal/schemas"
	"github.com/jonathan/cv-workbench/internal/taxonomy"
	"github.com/jonathan/cv-workbench/internal/types"
)

// Request selects what to rewrite and for which positioning
type Request struct {
	Mode           types.PositioningMode
	JDText         string
	AchievementIDs []string // empty rewrites every achievement
}

// Report describes how a rewrite response was merged
type Report struct {
	Rewritten []string            `json:"rewritten"`
	Ignored   []string            `json:"ignored"`
	Rejected  map[string][]string `json:"rejected"`
	Warnings  map[string][]string `json:"warnings"`
}

type rewriteResponse struct {
	Achievements []types.Achievement `json:"achievements"`
}

// RewriteAchievements asks the AI collaborator to rewrite the selected achievements and merges
// the result into a copy of the record. The input record is never modified.
func RewriteAchievements(ctx context.Context, client llm.Client, record *types.CareerRecord, req Request, opts llm.GenerateOptions) (*types.CareerRecord, *Report, error) {
	if client == nil {
		return nil, nil, &APICallError{Step: "input", Message: "AI client is required", Cause: llm.ErrNoClient}
	}
	if record == nil {
		return nil, nil, &APICallError{Step: "input", Message: "record is required"}
	}

	selected := selectAchievements(record, req.AchievementIDs)
	if len(selected) == 0 {
		return record.Clone(), newReport(), nil
	}

	achievementsJSON, err := json.MarshalIndent(selected, "", "  ")
	if err != nil {
		return nil, nil, &APICallError{Step: "prompt", Message: "failed to encode achievements", Cause: err}
	}

	mode := string(types.ParsePositioningMode(string(req.Mode)))
	prompt, err := prompts.Render("rewriting.json", "rewrite-achievements", map[string]string{
		"Mode":             mode,
		"JDText":           strings.TrimSpace(req.JDText),
		"Verbs":            strings.Join(taxonomy.Verbs(mode), ", "),
		"AchievementsJSON": string(achievementsJSON),
	})
	if err != nil {
		return nil, nil, &APICallError{Step: "prompt", Message: "failed to build prompt", Cause: err}
	}

	responseText, err := llm.Generate(ctx, client, prompt, opts)
	if err != nil {
		return nil, nil, &APICallError{Step: "generate", Message: "failed to generate content", Cause: err}
	}
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.Rewrite, responseText); err != nil {
		return nil, nil, &ParseError{Requested: len(selected), Message: "response does not match rewrite schema", Cause: err}
	}

	var response rewriteResponse
	if err := json.Unmarshal([]byte(responseText), &response); err != nil {
		return nil, nil, &ParseError{Requested: len(selected), Message: "failed to decode JSON", Cause: err}
	}

	merged, report := MergeRewrite(record, response.Achievements, mode)
	return merged, report, nil
}

// selectAchievements returns the achievements to rewrite in record order
func selectAchievements(record *types.CareerRecord, ids []string) []types.Achievement {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var selected []types.Achievement
	for _, a := range record.AllAchievements() {
		if len(ids) == 0 || wanted[a.ID] {
			selected = append(selected, a)
		}
	}
	return selected
}

func newReport() *Report {
	return &Report{
		Rewritten: []string{},
		Ignored:   []string{},
		Rejected:  map[string][]string{},
		Warnings:  map[string][]string{},
	}
}

// MergeRewrite applies rewritten achievements to a copy of the record, matching by id.
// Unknown ids are ignored and a rewrite that introduces figures absent from the original
// is rejected, keeping the original text. Tags are restricted to the vocabulary and inferred
// from the new text when none survive; empty metrics are re-extracted.
func MergeRewrite(record *types.CareerRecord, rewrites []types.Achievement, mode string) (*types.CareerRecord, *Report) {
	report := newReport()
	if record == nil {
		return nil, report
	}

	merged := record.Clone()
	index := make(map[string]*types.Achievement)
	for i := range merged.Experiences {
		for j := range merged.Experiences[i].Achievements {
			a := &merged.Experiences[i].Achievements[j]
			index[a.ID] = a
		}
	}

	var applied []types.Achievement
	for _, rw := range rewrites {
		target, ok := index[rw.ID]
		text := strings.TrimSpace(rw.Text)
		if !ok || text == "" {
			report.Ignored = append(report.Ignored, rw.ID)
			continue
		}

		checks := ValidateStyle(target.Text, text, mode)
		if !checks.NoNewFigures {
			report.Rejected[rw.ID] = checks.InventedFigure
			continue
		}

		target.Text = text
		target.Metrics = strings.TrimSpace(rw.Metrics)
		if target.Metrics == "" {
			target.Metrics = experience.ExtractMetrics(text)
		}
		target.Tags = experience.FilterTags(rw.Tags)
		if len(target.Tags) == 0 {
			target.Tags = experience.InferTags(text)
		}

		report.Rewritten = append(report.Rewritten, rw.ID)
		applied = append(applied, *target)
	}

	report.Warnings = CheckForbiddenPhrases(applied, taxonomy.Buzzwords)
	sort.Strings(report.Ignored)
	return merged, report
}

// Package types provides type definitions for structured data used throughout the cv-workbench system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PositioningMode is the coarse lens used to rank achievements and pick tone verb banks
type PositioningMode string

// Positioning modes
const (
	ModeGovernance     PositioningMode = "governance"
	ModeInfrastructure PositioningMode = "infrastructure"
	ModeDigital        PositioningMode = "digital"
	ModeHybrid         PositioningMode = "hybrid"
)

// ParsePositioningMode maps a string to a mode, defaulting to hybrid
func ParsePositioningMode(s string) PositioningMode {
	switch PositioningMode(s) {
	case ModeGovernance, ModeInfrastructure, ModeDigital, ModeHybrid:
		return PositioningMode(s)
	default:
		return ModeHybrid
	}
}

// JDAnalysis is the result of matching a job description against a career record.
// It is derived data and is recomputed on every run.
type JDAnalysis struct {
	MatchScore           int                 `json:"matchScore"`
	TopKeywords          []string            `json:"topKeywords"`
	PresentKeywords      []string            `json:"presentKeywords"`
	MissingKeywords      []string            `json:"missingKeywords"`
	CategoryScores       map[string]int      `json:"categoryScores"`
	TopCategories        []string            `json:"topCategories"`
	SuggestedPositioning PositioningMode     `json:"suggestedPositioning"`
	TagEmphasis          []string            `json:"tagEmphasis"`
	WordCount            int                 `json:"wordCount"`
	GapSuggestions       map[string][]string `json:"gapSuggestions,omitempty"`
	Source               string              `json:"source,omitempty"`
}

// ATSCheck is one boolean readiness check
type ATSCheck struct {
	Label string `json:"label"`
	Pass  bool   `json:"pass"`
}

// ATSScore is the percentage of readiness checks passed
type ATSScore struct {
	Score  int        `json:"score"`
	Checks []ATSCheck `json:"checks"`
}

// Result sources for operations with an AI path and a deterministic fallback
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// Package types provides type definitions for structured data used throughout the cv-workbench system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Severity levels for tone flags
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Tone flag kinds
const (
	FlagBuzzword   = "buzzword"
	FlagGeneric    = "generic"
	FlagWeakOpener = "weak-opener"
	FlagFormulaic  = "formulaic"
	FlagRepetition = "repetition"
)

// ToneFlag is a single lexical integrity finding
type ToneFlag struct {
	Type          string `json:"type"`
	Severity      string `json:"severity"`
	Phrase        string `json:"phrase"`
	Message       string `json:"message"`
	AchievementID string `json:"achievementId,omitempty"`
}

// ToneAudit aggregates integrity flags across a set of achievements
type ToneAudit struct {
	Flags     []ToneFlag `json:"flags"`
	RiskScore int        `json:"riskScore"`
}

// VerbSuggestion proposes replacing a weak opening with a stronger verb
type VerbSuggestion struct {
	Original   string `json:"original"`
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
}

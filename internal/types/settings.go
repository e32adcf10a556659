// Package types provides type definitions for structured data used throughout the cv-workbench system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// Paper sizes accepted by the renderer
const (
	PaperA4     = "a4"
	PaperLetter = "letter"
)

// DesignSettings are the presentation settings persisted alongside the career record
type DesignSettings struct {
	AccentColor string `json:"accentColor" validate:"omitempty,hexcolor"`
	FontSize    int    `json:"fontSize" validate:"omitempty,oneof=10 11 12"`
	PaperSize   string `json:"paperSize" validate:"omitempty,oneof=a4 letter"`
	ShowPhoto   bool   `json:"showPhoto"`
}

// DefaultDesignSettings returns the settings used when none are stored
func DefaultDesignSettings() DesignSettings {
	return DesignSettings{
		AccentColor: "#1F3A5F",
		FontSize:    11,
		PaperSize:   PaperA4,
	}
}

// Validate checks the settings against their struct tags
func (s DesignSettings) Validate() error {
	return validator.New().Struct(s)
}

// WithDefaults fills every zero field from DefaultDesignSettings
func (s DesignSettings) WithDefaults() DesignSettings {
	defaults := DefaultDesignSettings()
	if s.AccentColor == "" {
		s.AccentColor = defaults.AccentColor
	}
	if s.FontSize == 0 {
		s.FontSize = defaults.FontSize
	}
	if s.PaperSize == "" {
		s.PaperSize = defaults.PaperSize
	}
	return s
}

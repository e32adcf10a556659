package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailHint = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phoneHint = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
)

// Metadata describes an extracted document. The contact hints flag extractions that
// lost the header block, which is common with multi-column PDF layouts.
type Metadata struct {
	Filename    string    `json:"filename,omitempty"`
	MIME        string    `json:"mime,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	WordCount   int       `json:"word_count"`
	LineCount   int       `json:"line_count"`
	HasEmail    bool      `json:"has_email"`
	HasPhone    bool      `json:"has_phone"`
	ExtractedAt time.Time `json:"extracted_at"`
	SHA256      string    `json:"sha256"` // digest of the cleaned text
}

// NewMetadata summarizes cleaned text taken from filename
func NewMetadata(text string, filename string) *Metadata {
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return &Metadata{
		Filename:    filename,
		WordCount:   len(strings.Fields(text)),
		LineCount:   lines,
		HasEmail:    emailHint.MatchString(text),
		HasPhone:    phoneHint.MatchString(text),
		ExtractedAt: time.Now().UTC().Truncate(time.Second),
		SHA256:      digest(text),
	}
}

// SameText reports whether two extractions produced identical cleaned text
func (m *Metadata) SameText(other *Metadata) bool {
	return m != nil && other != nil && m.SHA256 == other.SHA256
}

func digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ToJSON returns the indented form written next to cleaned text
func (m *Metadata) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

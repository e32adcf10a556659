package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	blankRun   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and intra-line whitespace, keeps headings,
// bullets and indentation, and collapses blank runs to a single empty line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	return strings.TrimSpace(removeExcessiveBlankLines(strings.Join(lines, "\n")))
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\u00a0")
	if strings.TrimSpace(line) == "" {
		return ""
	}
	trimmed := strings.TrimLeft(line, " \t\u00a0")

	// markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + multiSpace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(trimmed string) bool {
	for _, prefix := range []string{"- ", "* ", "• ", "· ", "▪ ", "– "} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func removeExcessiveBlankLines(content string) string {
	return blankRun.ReplaceAllString(content, "\n\n")
}

// WriteOutput writes the cleaned text and metadata of doc into outDir as
// <name>.cleaned.txt and <name>.meta.json.
func WriteOutput(outDir string, doc *Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("no document to write")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(doc.Filename), filepath.Ext(doc.Filename))
	if base == "" || base == "." {
		base = "document"
	}

	cleanedPath := filepath.Join(outDir, base+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(doc.Text), 0644); err != nil {
		return "", fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metadata := doc.Metadata
	if metadata == nil {
		metadata = NewMetadata(doc.Text, doc.Filename)
	}
	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, base+".meta.json"), metaJSON, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata file: %w", err)
	}

	return cleanedPath, nil
}

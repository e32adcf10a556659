package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cv-workbench/internal/types"
)

// LoadCareerRecord loads a career record from a JSON file and normalizes it
func LoadCareerRecord(path string) (*types.CareerRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	var record types.CareerRecord
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, &LoadError{Path: path, Message: "invalid JSON", Cause: err}
	}

	if err := NormalizeCareerRecord(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SaveCareerRecord writes a career record as indented JSON
func SaveCareerRecord(path string, record *types.CareerRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

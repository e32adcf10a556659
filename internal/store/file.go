package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/schemas"
	"github.com/jonathan/cv-workbench/internal/types"
)

// FileStore persists store state as one JSON document on the local filesystem
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a FileStore writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file location
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the persisted state. A missing file yields an empty state.
func (f *FileStore) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, &PersistError{Message: fmt.Sprintf("failed to read %s", f.path), Cause: err}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, &PersistError{Message: fmt.Sprintf("failed to decode %s", f.path), Cause: err}
	}
	return state, nil
}

// Save writes the state atomically through a temporary file in the same directory
func (f *FileStore) Save(state State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Open loads the state at path and returns a store that saves back to it
func Open(path string, opts ...Option) (*Store, error) {
	fileStore := NewFileStore(path)
	state, err := fileStore.Load()
	if err != nil {
		return nil, err
	}
	return FromState(state, append([]Option{WithPersister(fileStore)}, opts...)...), nil
}

// ExportJSON serializes a record for export
func ExportJSON(record *types.CareerRecord) ([]byte, error) {
	if record == nil {
		record = types.NewCareerRecord()
	}
	return json.MarshalIndent(record, "", "  ")
}

// ImportJSON decodes an exported record. The document must match the career record schema.
// Ids present in the document are kept. The record then goes through
// experience.NormalizeCareerRecord, which infers tags and metrics where they are empty; every
// store operation applies the same inference and rejects what the schema refuses, so a record
// exported from the store is a fixed point and re-imports deep-equal.
func ImportJSON(data []byte) (*types.CareerRecord, error) {
	if err := schemas.Validate(schemas.CareerRecord, string(data)); err != nil {
		return nil, &ValidationError{Message: "document does not match career record schema", Cause: err}
	}

	var record types.CareerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, &ValidationError{Message: "failed to decode record", Cause: err}
	}
	if err := experience.NormalizeCareerRecord(&record); err != nil {
		return nil, &ValidationError{Message: "record is not valid", Cause: err}
	}
	return &record, nil
}

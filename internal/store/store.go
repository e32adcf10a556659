// Package store holds the career record as an explicit state container. Every update produces a
// new record; the previous one goes onto a bounded undo history.
package store

import (
	"sync"
	"time"

	"github.com/jonathan/cv-workbench/internal/experience"
	"github.com/jonathan/cv-workbench/internal/types"
)

// MaxHistory bounds the number of undo steps kept
const MaxHistory = 50

// Version is a labelled snapshot of the record
type Version struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	CreatedAt time.Time           `json:"createdAt"`
	Record    *types.CareerRecord `json:"record"`
}

// State is everything the store persists
type State struct {
	Record   *types.CareerRecord  `json:"record"`
	Versions []Version            `json:"versions"`
	Settings types.DesignSettings `json:"settings"`
	// History holds undo steps, oldest first, so undo survives a restart
	History []*types.CareerRecord `json:"history,omitempty"`
}

// Persister saves store state after every successful change
type Persister interface {
	Save(state State) error
}

// Store is safe for concurrent use. Records handed out are copies.
type Store struct {
	mu        sync.RWMutex
	current   *types.CareerRecord
	history   []*types.CareerRecord
	versions  []Version
	settings  types.DesignSettings
	persister Persister
	now       func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithPersister saves state through p after every change
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

// WithClock overrides the clock used to stamp versions
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store holding a normalized copy of record, or an empty record when nil
func New(record *types.CareerRecord, opts ...Option) *Store {
	return FromState(State{Record: record}, opts...)
}

// FromState restores a store from persisted state
func FromState(state State, opts ...Option) *Store {
	record := state.Record.Clone()
	if record == nil {
		record = types.NewCareerRecord()
	}
	_ = experience.NormalizeCareerRecord(record)

	settings := state.Settings
	if settings == (types.DesignSettings{}) {
		settings = types.DefaultDesignSettings()
	}

	var history []*types.CareerRecord
	for _, h := range state.History {
		if h != nil {
			history = append(history, h.Clone())
		}
	}
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	s := &Store{
		current:  record,
		history:  history,
		versions: append([]Version{}, state.Versions...),
		settings: settings,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record returns a copy of the current record
func (s *Store) Record() *types.CareerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// State returns a copy of the persisted state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked(s.current, s.history)
}

func (s *Store) stateLocked(record *types.CareerRecord, history []*types.CareerRecord) State {
	versions := make([]Version, len(s.versions))
	for i, v := range s.versions {
		versions[i] = v
		versions[i].Record = v.Record.Clone()
	}
	state := State{Record: record.Clone(), Versions: versions, Settings: s.settings}
	for _, h := range history {
		state.History = append(state.History, h.Clone())
	}
	return state
}

// HistoryLen reports how many undo steps are available
func (s *Store) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// update applies fn to a copy of the current record. fn returns an error to abandon the change,
// leaving the store untouched.
func (s *Store) update(fn func(r *types.CareerRecord) error) (*types.CareerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		return s.current.Clone(), err
	}
	history := append(append([]*types.CareerRecord{}, s.history...), s.current)
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	if err := s.persistLocked(next, history); err != nil {
		return s.current.Clone(), err
	}

	s.history = history
	s.current = next
	return next.Clone(), nil
}

func (s *Store) persistLocked(record *types.CareerRecord, history []*types.CareerRecord) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(s.stateLocked(record, history)); err != nil {
		return &PersistError{Message: "failed to save state", Cause: err}
	}
	return nil
}

// Undo restores the record that preceded the last change. It reports false when there is
// nothing to undo.
func (s *Store) Undo() (*types.CareerRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return s.current.Clone(), false, nil
	}
	previous := s.history[len(s.history)-1]
	if err := s.persistLocked(previous, s.history[:len(s.history)-1]); err != nil {
		return s.current.Clone(), false, err
	}
	s.history = s.history[:len(s.history)-1]
	s.current = previous
	return previous.Clone(), true, nil
}

// Settings returns the design settings
func (s *Store) Settings() types.DesignSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the design settings. Settings changes are not part of undo history.
func (s *Store) SetSettings(settings types.DesignSettings) error {
	if err := settings.Validate(); err != nil {
		return &ValidationError{Message: "design settings are not valid", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.settings
	s.settings = settings
	if err := s.persistLocked(s.current, s.history); err != nil {
		s.settings = previous
		return err
	}
	return nil
}

// SaveVersion snapshots the current record under a label
func (s *Store) SaveVersion(label string) (Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := Version{
		ID:        types.NewID(),
		Label:     label,
		CreatedAt: s.now().UTC(),
		Record:    s.current.Clone(),
	}
	s.versions = append(s.versions, v)
	if err := s.persistLocked(s.current, s.history); err != nil {
		s.versions = s.versions[:len(s.versions)-1]
		return Version{}, err
	}
	v.Record = v.Record.Clone()
	return v, nil
}

// Versions lists saved versions, oldest first
func (s *Store) Versions() []Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked(s.current, nil).Versions
}

// RestoreVersion makes a saved version the current record. The restore itself can be undone.
func (s *Store) RestoreVersion(id string) (*types.CareerRecord, error) {
	s.mu.RLock()
	var snapshot *types.CareerRecord
	for _, v := range s.versions {
		if v.ID == id {
			snapshot = v.Record
		}
	}
	s.mu.RUnlock()

	if snapshot == nil {
		return s.Record(), &NotFoundError{Kind: "version", ID: id}
	}
	return s.ReplaceAll(snapshot)
}

// DeleteVersion removes a saved version
func (s *Store) DeleteVersion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.versions {
		if v.ID != id {
			continue
		}
		previous := s.versions
		s.versions = append(append([]Version{}, s.versions[:i]...), s.versions[i+1:]...)
		if err := s.persistLocked(s.current, s.history); err != nil {
			s.versions = previous
			return err
		}
		return nil
	}
	return &NotFoundError{Kind: "version", ID: id}
}

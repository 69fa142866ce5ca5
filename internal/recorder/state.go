package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"CryptoSentinel/internal/logger"
	"CryptoSentinel/internal/model"

	"go.uber.org/zap"
)

// maxStoredChanges bounds the change log kept in the state file.
const maxStoredChanges = 200

// State is the JSON document kept by StateRecorder.
type State struct {
	Directions map[string]model.Direction `json:"directions"`
	Changes    []SignalChange             `json:"changes"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}

// StateRecorder keeps the last direction per symbol in a JSON file. It is the
// fallback when SQLite cannot be opened, so alerts survive a restart.
type StateRecorder struct {
	mu       sync.Mutex
	state    *State
	filePath string
	log      *zap.Logger
}

// LoadState reads the state file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	state := &State{Directions: make(map[string]model.Direction)}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if state.Directions == nil {
		state.Directions = make(map[string]model.Direction)
	}
	return state, nil
}

// SaveState writes the state file.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0o644)
}

// NewStateRecorder loads or initializes the state file.
func NewStateRecorder(filePath string) (*StateRecorder, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	r := &StateRecorder{state: state, filePath: filePath, log: logger.Named("recorder")}
	if err := r.save(); err != nil {
		return nil, err
	}
	r.log.Info("state recorder opened", zap.String("path", filePath), zap.Int("symbols", len(state.Directions)))
	return r, nil
}

func stateKey(symbol string, interval model.Interval) string {
	return symbol + "@" + string(interval)
}

func (r *StateRecorder) save() error {
	return SaveState(r.filePath, r.state)
}

func (r *StateRecorder) RecordSnapshot(snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := model.DirectionNeutral
	if snap.Signal != nil {
		dir = snap.Signal.Direction
	}
	key := stateKey(snap.Symbol, snap.Interval)
	if prev, ok := r.state.Directions[key]; ok && prev == dir {
		return nil
	}
	r.state.Directions[key] = dir
	return r.save()
}

func (r *StateRecorder) RecordSignalChange(evt *SignalChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Changes = append(r.state.Changes, *evt)
	if over := len(r.state.Changes) - maxStoredChanges; over > 0 {
		r.state.Changes = r.state.Changes[over:]
	}
	return r.save()
}

func (r *StateRecorder) LatestDirection(symbol string, interval model.Interval) (model.Direction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dir, ok := r.state.Directions[stateKey(symbol, interval)]
	return dir, ok, nil
}

// Changes returns a copy of the stored change log, oldest first.
func (r *StateRecorder) Changes() []SignalChange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SignalChange(nil), r.state.Changes...)
}

func (r *StateRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save()
}

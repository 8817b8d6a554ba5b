package hire

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/username/plant-hire-calculator/internal/billing"
	"go.uber.org/zap"
)

// SessionState is the persisted hire session: the viewed month and the equipment list
type SessionState struct {
	Month     string              `json:"month"` // YYYY-MM
	Equipment []billing.Equipment `json:"equipment"`
	UpdatedAt string              `json:"updated_at"`
}

// SessionStore reads and writes the session file
type SessionStore struct {
	stateFile string
	logger    *zap.Logger
}

// NewSessionStore creates a new session store
func NewSessionStore(stateFile string, logger *zap.Logger) *SessionStore {
	return &SessionStore{
		stateFile: stateFile,
		logger:    logger,
	}
}

// Path returns the session file path
func (s *SessionStore) Path() string {
	return s.stateFile
}

// Load loads the session from file.
// A missing file yields an empty session.
func (s *SessionStore) Load() (*SessionState, error) {
	data, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			return &SessionState{Equipment: []billing.Equipment{}}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	s.logger.Info("Session loaded",
		zap.String("file", s.stateFile),
		zap.String("month", state.Month),
		zap.Int("equipment", len(state.Equipment)))

	return &state, nil
}

// Save writes the session to file
func (s *SessionStore) Save(state *SessionState) error {
	state.UpdatedAt = time.Now().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if dir := filepath.Dir(s.stateFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.stateFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.logger.Info("Session saved",
		zap.String("file", s.stateFile),
		zap.String("month", state.Month),
		zap.Int("equipment", len(state.Equipment)))

	return nil
}

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cookie is one persisted cookie record. The fields round-trip through the
// browser driver's cookie import/export contract.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires,omitempty"`
	HttpOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

// State is the authentication state carried between process invocations.
type State struct {
	Cookies []Cookie `json:"cookies"`
}

func (s State) Empty() bool {
	return len(s.Cookies) == 0
}

// Store persists login cookies to a JSON file so repeat requests skip the
// interactive login flow. Concurrent saves are last-write-wins; cookies are a
// soft-state optimization, not a correctness-critical resource.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing or unreadable file is the
// normal first-run outcome and returns an empty state with ok=false; the
// caller falls back to interactive login.
func (s *Store) Load() (State, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return State{}, false
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt file, treat as absent and re-authenticate.
		return State{}, false
	}
	if state.Empty() {
		return State{}, false
	}
	return state, true
}

// Save writes the session to disk, creating parent directories as needed.
func (s *Store) Save(state State) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create session directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("could not write session file: %w", err)
	}
	return nil
}

// Clear drops the persisted session, used when cookies are judged stale.
func (s *Store) Clear() {
	os.Remove(s.path)
}

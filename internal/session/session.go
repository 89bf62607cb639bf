// Package session persists lightweight state between authoring runs: the
// last routed intent, a short list of sticky entity IDs carried forward,
// and a bounded request history.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	maxHistory = 50
	maxSticky  = 8
)

// Entry records one processed request.
type Entry struct {
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	IDs       []string  `json:"ids"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the on-disk session record. The zero value is a fresh session.
type State struct {
	LastIntent string   `json:"last_intent"`
	StickyIDs  []string `json:"sticky_ids"`
	History    []Entry  `json:"history"`
}

// Load reads session state from path. A missing file is a fresh session,
// not an error.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Record appends a processed request, caps the history, and refreshes the
// sticky set from the request's resolved IDs.
func (s *State) Record(query, intent string, ids []string) {
	s.LastIntent = intent
	s.History = append(s.History, Entry{
		Query:     query,
		Intent:    intent,
		IDs:       ids,
		Timestamp: time.Now().UTC(),
	})
	if len(s.History) > maxHistory {
		s.History = s.History[len(s.History)-maxHistory:]
	}

	sticky := dedupe(ids)
	if len(sticky) > maxSticky {
		sticky = sticky[:maxSticky]
	}
	s.StickyIDs = sticky
}

// Carry merges sticky IDs in front of freshly resolved ones, deduplicated.
// Sticky IDs lead so carried context survives truncation downstream.
func (s *State) Carry(resolved []string) []string {
	sticky := dedupe(s.StickyIDs)
	merged := append(append([]string{}, sticky...), resolved...)
	return dedupe(merged)
}

// Save writes the state as indented JSON, creating parent directories.
func (s *State) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Clear removes the session file. A missing file is fine.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SortedStickyIDs returns the sticky set in sorted order for stable
// display.
func (s *State) SortedStickyIDs() []string {
	out := append([]string{}, s.StickyIDs...)
	sort.Strings(out)
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		key := strings.ToLower(id)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, id)
	}
	return out
}

package contextpack

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"tidescraft/internal/expand"
)

// Limits records the caps that shaped an export.
type Limits struct {
	MaxEntities int `json:"max_entities"`
}

// Export is the machine-readable record of one context build: what was
// asked, what was matched, what was pulled in by expansion, and the final
// ordering actually handed downstream.
type Export struct {
	Query      string             `json:"query"`
	Intent     string             `json:"intent"`
	Profile    string             `json:"profile"`
	PrimaryIDs []string           `json:"primary_ids"`
	Expanded   []expand.Candidate `json:"expanded"`
	Order      []string           `json:"order"`
	Limits     Limits             `json:"limits"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Write serializes the export as indented JSON, creating parent directories
// as needed.
func (ex *Export) Write(path string) error {
	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

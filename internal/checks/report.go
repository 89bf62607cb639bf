// Package checks implements the prose-facing consistency checkers: canon
// lint rules, character continuity invariants, timeline variance, and
// glossary enforcement. Issues come in two tiers: hard failures block,
// soft warnings inform.
package checks

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Severity of a finding.
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// WriteReport serializes a report as indented JSON under path, creating
// parent directories as needed.
func WriteReport(path string, report any) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

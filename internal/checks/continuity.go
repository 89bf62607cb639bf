package checks

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tidescraft/internal/entity"
)

// ContinuityIssue is one suspected contradiction between a character's
// declared invariant and a statement found in story text.
type ContinuityIssue struct {
	Type      Severity `json:"type"`
	Story     string   `json:"story"`
	Character string   `json:"character"`
	Invariant string   `json:"invariant"`
	Found     string   `json:"found"`
	Location  string   `json:"location"`
}

// ContinuityReport summarizes one continuity pass.
type ContinuityReport struct {
	Timestamp time.Time                   `json:"timestamp"`
	Hard      []ContinuityIssue           `json:"hard"`
	Soft      []ContinuityIssue           `json:"soft"`
	ByName    map[string][]ContinuityIssue `json:"characters"`
	Summary   ContinuitySummary           `json:"summary"`
}

// ContinuitySummary carries the counts used for exit-code decisions.
type ContinuitySummary struct {
	TotalCharacters int `json:"total_characters"`
	TotalStories    int `json:"total_stories"`
	HardFailures    int `json:"hard_failures"`
	SoftWarnings    int `json:"soft_warnings"`
}

// Failed reports whether any hard contradiction was found. Soft warnings
// never fail a run.
func (r *ContinuityReport) Failed() bool { return r.Summary.HardFailures > 0 }

// ParseInvariant splits a declared invariant like "Species: Human" into its
// property and expected value. Generic physics invariants carry no checkable
// property and are skipped.
func ParseInvariant(invariant string) (property, expected string, ok bool) {
	if invariant == "" ||
		strings.HasPrefix(invariant, "Memory physics") ||
		strings.HasPrefix(invariant, "Anchor burn") {
		return "", "", false
	}
	prop, val, found := strings.Cut(invariant, ":")
	if !found || strings.TrimSpace(val) == "" {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(prop)), strings.ToLower(strings.TrimSpace(val)), true
}

// propertyMentions finds statements about a property in story text, e.g.
// "eye color: blue" or "her species was Human". The patterns are loose on
// purpose: this checker is a best-effort lint, not a correctness oracle.
func propertyMentions(content, property string) []string {
	quoted := regexp.QuoteMeta(property)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b` + quoted + `\b\s*[:=]\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\b` + quoted + `\b\s+(?:is|was|are|were)\s+([^\n.]+)`),
		regexp.MustCompile(`(?i)\b` + quoted + `\b\s+([^\n.]+)`),
	}

	var mentions []string
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			if v := strings.TrimSpace(m[1]); v != "" {
				mentions = append(mentions, v)
			}
		}
	}
	return mentions
}

// CheckContinuity scans every story for mentions of characters that carry
// continuity invariants and flags statements about an invariant property
// that do not contain the expected value.
func CheckContinuity(col *entity.Collection) *ContinuityReport {
	report := &ContinuityReport{
		Timestamp: time.Now().UTC(),
		ByName:    make(map[string][]ContinuityIssue),
	}

	var characters, stories []*entity.Entity
	for _, e := range col.All() {
		switch e.Kind {
		case entity.KindCharacter:
			characters = append(characters, e)
			report.ByName[e.Name] = nil
		case entity.KindStory:
			stories = append(stories, e)
		}
	}
	report.Summary.TotalCharacters = len(characters)
	report.Summary.TotalStories = len(stories)

	for _, story := range stories {
		lowerBody := strings.ToLower(story.Body)
		for _, char := range characters {
			if char.Name == "" || !strings.Contains(lowerBody, strings.ToLower(char.Name)) {
				continue
			}
			for _, invariant := range char.Invariants {
				property, expected, ok := ParseInvariant(invariant)
				if !ok {
					continue
				}
				for _, mention := range propertyMentions(story.Body, property) {
					if strings.Contains(strings.ToLower(mention), expected) {
						continue
					}
					issue := ContinuityIssue{
						Type:      SeverityHard,
						Story:     story.Name,
						Character: char.Name,
						Invariant: invariant,
						Found:     mention,
						Location:  fmt.Sprintf("Story: %s", story.Name),
					}
					report.Hard = append(report.Hard, issue)
					report.ByName[char.Name] = append(report.ByName[char.Name], issue)
				}
			}
		}
	}

	report.Summary.HardFailures = len(report.Hard)
	report.Summary.SoftWarnings = len(report.Soft)
	return report
}

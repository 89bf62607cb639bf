package checks

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CanonRule is a red line of the universe: a pattern that prose must never
// match, regardless of what structured metadata says.
type CanonRule struct {
	Pattern  *regexp.Regexp
	Message  string
	Severity Severity
}

// redLines are the canonical non-negotiables. Patterns are matched per
// line, case-insensitively.
var redLines = []CanonRule{
	{
		Pattern:  regexp.MustCompile(`(?i)anchor (regrew|regenerated|restored|recovered)`),
		Message:  "Violation: Anchors CANNOT regrow, regenerate, or be restored.",
		Severity: SeverityHard,
	},
	{
		Pattern:  regexp.MustCompile(`(?i)Rell.*(restored|recovered|got back).*anchor`),
		Message:  "Violation: Rell's burned anchors can NEVER be restored.",
		Severity: SeverityHard,
	},
	{
		Pattern:  regexp.MustCompile(`(?i)Heliodrome.*(resolved|fixed|repaired|spontaneously)`),
		Message:  "Violation: The Heliodrome cannot spontaneously resolve or be easily fixed.",
		Severity: SeverityHard,
	},
	{
		Pattern:  regexp.MustCompile(`(?i)Corridor.*without.*memory`),
		Message:  "Violation: Corridors cannot function without memory input.",
		Severity: SeverityHard,
	},
	{
		Pattern:  regexp.MustCompile(`(?i)Sutira.*(hysterically|uncontrollably|broke down)`),
		Message:  "Warning: Sutira cannot casually break emotionally; her breakdowns must be controlled.",
		Severity: SeveritySoft,
	},
	{
		Pattern:  regexp.MustCompile(`(?i)Tari.*(naive|clueless|stupid)`),
		Message:  "Warning: Tari must never be written as naive; he is innocent but perceptive.",
		Severity: SeveritySoft,
	},
}

// CanonFinding is one rule violation at a specific file and line.
type CanonFinding struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// CanonReport collects all violations from one lint run.
type CanonReport struct {
	Findings []CanonFinding `json:"findings"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
}

// Failed reports whether any hard violation was found.
func (r *CanonReport) Failed() bool { return r.Errors > 0 }

// LintText applies every red line to each line of text. Multiple rules can
// fire on the same line.
func LintText(file, text string) []CanonFinding {
	var findings []CanonFinding
	for i, line := range strings.Split(text, "\n") {
		for _, rule := range redLines {
			if rule.Pattern.MatchString(line) {
				findings = append(findings, CanonFinding{
					File:     file,
					Line:     i + 1,
					Message:  rule.Message,
					Text:     strings.TrimSpace(line),
					Severity: rule.Severity,
				})
			}
		}
	}
	return findings
}

// LintCanon walks the story roots and lints every markdown file against the
// red lines. Frontmatter is linted along with the body: a violation in
// metadata is still a violation.
func LintCanon(roots []string, exclude []string) (*CanonReport, error) {
	report := &CanonReport{}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if excluded(d.Name(), exclude) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".md") || strings.EqualFold(d.Name(), "readme.md") {
				return nil
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			report.Findings = append(report.Findings, LintText(path, string(content))...)
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
	}
	for _, f := range report.Findings {
		if f.Severity == SeverityHard {
			report.Errors++
		} else {
			report.Warnings++
		}
	}
	return report, nil
}

func excluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
}

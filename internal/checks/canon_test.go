package checks

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLintText(t *testing.T) {
	t.Run("hard violation", func(t *testing.T) {
		findings := LintText("story.md", "Over the winter his anchor regrew like coral.\n")
		if len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
		f := findings[0]
		if f.Severity != SeverityHard {
			t.Fatalf("expected hard severity, got %q", f.Severity)
		}
		if f.Line != 1 {
			t.Fatalf("expected line 1, got %d", f.Line)
		}
		if f.Message != "Violation: Anchors CANNOT regrow, regenerate, or be restored." {
			t.Fatalf("unexpected message: %q", f.Message)
		}
	})

	t.Run("soft violation", func(t *testing.T) {
		findings := LintText("story.md", "Sutira sobbed hysterically in the corridor.\n")
		if len(findings) != 1 || findings[0].Severity != SeveritySoft {
			t.Fatalf("expected one soft finding, got %#v", findings)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if findings := LintText("story.md", "THE HELIODROME FIXED ITSELF OVERNIGHT"); len(findings) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(findings))
		}
	})

	t.Run("multiple rules on one line", func(t *testing.T) {
		text := "Rell recovered his anchor the day the anchor regenerated."
		findings := LintText("story.md", text)
		if len(findings) != 2 {
			t.Fatalf("expected 2 findings, got %d: %#v", len(findings), findings)
		}
	})

	t.Run("line numbers track the split", func(t *testing.T) {
		text := "Clean line.\nAnother clean line.\nThe corridor hummed without any memory at all.\n"
		findings := LintText("story.md", text)
		if len(findings) != 1 || findings[0].Line != 3 {
			t.Fatalf("expected finding on line 3, got %#v", findings)
		}
	})

	t.Run("clean text", func(t *testing.T) {
		if findings := LintText("story.md", "Maris dove into the drowned stacks.\n"); findings != nil {
			t.Fatalf("expected no findings, got %#v", findings)
		}
	})
}

func TestLintCanon(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("tide.md", "His anchor regrew overnight.\nTari seemed naive about the debt.\n")
	write("clean.md", "Nothing wrong here.\n")
	write("README.md", "The anchor regrew, but this is a readme.\n")
	write(filepath.Join("node_modules", "dep.md"), "The anchor regrew here too.\n")

	report, err := LintCanon([]string{dir}, []string{"node_modules"})
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if report.Errors != 1 {
		t.Fatalf("expected 1 error, got %d: %#v", report.Errors, report.Findings)
	}
	if report.Warnings != 1 {
		t.Fatalf("expected 1 warning, got %d", report.Warnings)
	}
	if !report.Failed() {
		t.Fatalf("expected failure with a hard violation present")
	}
}

func TestLintCanon_MissingRoot(t *testing.T) {
	report, err := LintCanon([]string{filepath.Join(t.TempDir(), "absent")}, nil)
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(report.Findings) != 0 || report.Failed() {
		t.Fatalf("expected empty passing report, got %#v", report)
	}
}

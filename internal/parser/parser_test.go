package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("character with full frontmatter", func(t *testing.T) {
		content := []byte("---\nid: CHAR-0001\ntype: character\nname: Maris Wreck-Diver\naliases: [The Diver]\ntags: [salvage, anchor-burned]\ncross_refs:\n  locations: [LOC-0002]\n---\n\nMaris dives the drowned stacks.\n")
		doc, err := Parse(content)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.StringField("id") != "CHAR-0001" {
			t.Fatalf("expected id, got %q", doc.StringField("id"))
		}
		if doc.StringField("name") != "Maris Wreck-Diver" {
			t.Fatalf("expected name, got %q", doc.StringField("name"))
		}
		if doc.Body == "" {
			t.Fatalf("expected body")
		}
		if _, ok := doc.Frontmatter["cross_refs"]; !ok {
			t.Fatalf("expected cross_refs in frontmatter")
		}
	})

	t.Run("minimal frontmatter", func(t *testing.T) {
		doc, err := Parse([]byte("---\nid: LOC-0001\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.Body != "" {
			t.Fatalf("expected empty body, got %q", doc.Body)
		}
	})

	t.Run("no frontmatter", func(t *testing.T) {
		_, err := Parse([]byte("Just text"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("missing closing marker", func(t *testing.T) {
		_, err := Parse([]byte("---\nid: CHAR-0002\n"))
		if !errors.Is(err, ErrNoFrontmatter) {
			t.Fatalf("expected ErrNoFrontmatter, got %v", err)
		}
	})

	t.Run("closing marker at EOF without newline", func(t *testing.T) {
		doc, err := Parse([]byte("---\nid: CHAR-0003\n---"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.StringField("id") != "CHAR-0003" {
			t.Fatalf("expected id, got %q", doc.StringField("id"))
		}
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		content := []byte("---\r\nid: CHAR-0005\r\nname: Tari\r\n---\r\n\r\nTari keeps the ledger.\r\n")
		doc, err := Parse(content)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.StringField("id") != "CHAR-0005" {
			t.Fatalf("expected id, got %q", doc.StringField("id"))
		}
		if doc.Body != "\nTari keeps the ledger.\n" {
			t.Fatalf("expected normalized body, got %q", doc.Body)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("---\nid: [\n---\n"))
		if !errors.Is(err, ErrInvalidYAML) {
			t.Fatalf("expected ErrInvalidYAML, got %v", err)
		}
	})

	t.Run("BOM trimmed", func(t *testing.T) {
		doc, err := Parse([]byte("\ufeff---\nid: CHAR-0004\n---\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if doc.StringField("id") != "CHAR-0004" {
			t.Fatalf("expected id, got %q", doc.StringField("id"))
		}
	})
}

func TestStringField_NilSafe(t *testing.T) {
	var doc *Document
	if got := doc.StringField("id"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
	doc = &Document{}
	if got := doc.StringField("id"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestStringList(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		if got := StringList("lone"); !reflect.DeepEqual(got, []string{"lone"}) {
			t.Fatalf("unexpected: %#v", got)
		}
	})
	t.Run("list", func(t *testing.T) {
		got := StringList([]any{"a", "b", 3, ""})
		if !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Fatalf("unexpected: %#v", got)
		}
	})
	t.Run("nil and empty", func(t *testing.T) {
		if got := StringList(nil); got != nil {
			t.Fatalf("unexpected: %#v", got)
		}
		if got := StringList(""); got != nil {
			t.Fatalf("unexpected: %#v", got)
		}
		if got := StringList([]any{1, 2}); got != nil {
			t.Fatalf("unexpected: %#v", got)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "character.md")
	content := "---\nid: CHAR-0005\ntype: character\nname: Rell\n---\n\nBody text.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.SourceFile != path {
		t.Fatalf("expected source file %q, got %q", path, doc.SourceFile)
	}
	if doc.StringField("name") != "Rell" {
		t.Fatalf("expected name, got %q", doc.StringField("name"))
	}
}

func TestParseFile_ReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")
	if _, err := ParseFile(path); err == nil {
		t.Fatalf("expected error")
	}
}

package graphexport

import (
	"strings"
	"testing"

	"tidescraft/internal/entity"
)

func graphCollection() *entity.Collection {
	col := entity.NewCollection()
	col.Add(&entity.Entity{
		ID:         "CHAR-0001",
		Kind:       entity.KindCharacter,
		Name:       "Maris",
		SourcePath: "characters/maris.md",
		CrossRefs: map[string][]string{
			"locations": {"LOC-0002"},
			"factions":  {"FACT-9999"},
		},
	})
	col.Add(&entity.Entity{
		ID: "LOC-0002", Kind: entity.KindLocation, Name: "The Heliodrome",
		SourcePath: "atlas/heliodrome.md",
	})
	col.Add(&entity.Entity{
		ID: "TERM-anchor", Kind: entity.KindTerm, Name: "Anchor",
		RelatedTerms: []string{"Memory Debt"},
	})
	col.Add(&entity.Entity{ID: "TERM-debt", Kind: entity.KindTerm, Name: "Memory Debt"})
	return col
}

func TestBuild(t *testing.T) {
	rm := Build(graphCollection())

	t.Run("nodes cover entities plus placeholders", func(t *testing.T) {
		// 4 loaded entities + placeholder for the dangling FACT-9999.
		if len(rm.Nodes) != 5 {
			t.Fatalf("expected 5 nodes, got %d: %+v", len(rm.Nodes), rm.Nodes)
		}
		var placeholder *Node
		for i := range rm.Nodes {
			if rm.Nodes[i].CanonicalID == "FACT-9999" {
				placeholder = &rm.Nodes[i]
			}
		}
		if placeholder == nil {
			t.Fatalf("missing placeholder node")
		}
		if placeholder.Path != "" || placeholder.Type != "term" {
			t.Fatalf("unexpected placeholder: %+v", placeholder)
		}
	})

	t.Run("nodes sorted by canonical ID", func(t *testing.T) {
		for i := 1; i < len(rm.Nodes); i++ {
			if rm.Nodes[i-1].CanonicalID > rm.Nodes[i].CanonicalID {
				t.Fatalf("nodes out of order at %d: %+v", i, rm.Nodes)
			}
		}
	})

	t.Run("cross ref and related edges typed", func(t *testing.T) {
		types := make(map[string]string)
		for _, e := range rm.Edges {
			types[e.From+"->"+e.To] = e.Type
		}
		if types["CHAR-0001->LOC-0002"] != "location" {
			t.Fatalf("unexpected edges: %v", types)
		}
		if types["CHAR-0001->FACT-9999"] != "faction" {
			t.Fatalf("unexpected edges: %v", types)
		}
		// Related terms written as display names resolve to IDs.
		if types["TERM-anchor->TERM-debt"] != "related" {
			t.Fatalf("unexpected edges: %v", types)
		}
	})
}

func TestCanonicalIndexMarkdown(t *testing.T) {
	md := Build(graphCollection()).CanonicalIndexMarkdown()
	if !strings.Contains(md, "# Canonical Index") {
		t.Fatalf("missing title:\n%s", md)
	}
	if !strings.Contains(md, "## Character") {
		t.Fatalf("missing capitalized type heading:\n%s", md)
	}
	if !strings.Contains(md, "- `CHAR-0001` — Maris (`characters/maris.md`)") {
		t.Fatalf("missing entity line:\n%s", md)
	}
	if !strings.Contains(md, "- `FACT-9999` — FACT-9999\n") {
		t.Fatalf("placeholder should render without a path:\n%s", md)
	}
}

func TestLinkMapMarkdown(t *testing.T) {
	md := Build(graphCollection()).LinkMapMarkdown()
	if !strings.Contains(md, "## Entities (5)") {
		t.Fatalf("missing entity count:\n%s", md)
	}
	if !strings.Contains(md, "## Relationships (3)") {
		t.Fatalf("missing relationship count:\n%s", md)
	}
	if !strings.Contains(md, "- `CHAR-0001` → `LOC-0002` (location)") {
		t.Fatalf("missing edge line:\n%s", md)
	}
}

package expand

import (
	"reflect"
	"testing"

	"tidescraft/internal/entity"
)

func expandCollection() *entity.Collection {
	col := entity.NewCollection()
	col.Add(&entity.Entity{
		ID:   "CHAR-0001",
		Kind: entity.KindCharacter,
		Name: "Maris",
		CrossRefs: map[string][]string{
			"locations":  {"LOC-0002"},
			"factions":   {"FACT-0003"},
			"characters": {"CHAR-0004", "CHAR-9999"},
		},
	})
	col.Add(&entity.Entity{ID: "LOC-0002", Kind: entity.KindLocation, Name: "The Heliodrome"})
	col.Add(&entity.Entity{ID: "FACT-0003", Kind: entity.KindFaction, Name: "Sutira Compact"})
	col.Add(&entity.Entity{ID: "CHAR-0004", Kind: entity.KindCharacter, Name: "Rell"})
	col.Add(&entity.Entity{
		ID:           "TERM-anchor",
		Kind:         entity.KindTerm,
		Name:         "Anchor",
		RelatedTerms: []string{"TERM-burn", "Memory Debt"},
	})
	col.Add(&entity.Entity{ID: "TERM-burn", Kind: entity.KindTerm, Name: "Anchor Burn"})
	col.Add(&entity.Entity{ID: "TERM-debt", Kind: entity.KindTerm, Name: "Memory Debt"})
	return col
}

func TestExpand(t *testing.T) {
	col := expandCollection()

	t.Run("one hop along cross refs in fixed category order", func(t *testing.T) {
		got := Expand([]string{"CHAR-0001"}, col)
		wantIDs := []string{"LOC-0002", "FACT-0003", "CHAR-0004"}
		ids := make([]string, len(got))
		for i, c := range got {
			ids[i] = c.ID
		}
		if !reflect.DeepEqual(ids, wantIDs) {
			t.Fatalf("expected %v, got %v", wantIDs, ids)
		}
		if got[0].Reason != "1-hop from CHAR-0001 → locations" {
			t.Fatalf("unexpected reason: %q", got[0].Reason)
		}
	})

	t.Run("unresolvable targets are dropped", func(t *testing.T) {
		for _, c := range Expand([]string{"CHAR-0001"}, col) {
			if c.ID == "CHAR-9999" {
				t.Fatalf("dangling ref should not be emitted")
			}
		}
	})

	t.Run("primary IDs are never re-emitted", func(t *testing.T) {
		got := Expand([]string{"CHAR-0001", "LOC-0002"}, col)
		for _, c := range got {
			if c.ID == "LOC-0002" {
				t.Fatalf("primary ID re-emitted: %v", got)
			}
		}
	})

	t.Run("expansion is one hop only", func(t *testing.T) {
		col2 := entity.NewCollection()
		col2.Add(&entity.Entity{
			ID: "CHAR-0001", Kind: entity.KindCharacter,
			CrossRefs: map[string][]string{"characters": {"CHAR-0002"}},
		})
		col2.Add(&entity.Entity{
			ID: "CHAR-0002", Kind: entity.KindCharacter,
			CrossRefs: map[string][]string{"characters": {"CHAR-0003"}},
		})
		col2.Add(&entity.Entity{ID: "CHAR-0003", Kind: entity.KindCharacter})

		got := Expand([]string{"CHAR-0001"}, col2)
		if len(got) != 1 || got[0].ID != "CHAR-0002" {
			t.Fatalf("expected exactly the first hop, got %v", got)
		}
	})

	t.Run("terms follow related terms by ID or name", func(t *testing.T) {
		got := Expand([]string{"TERM-anchor"}, col)
		ids := make([]string, len(got))
		for i, c := range got {
			ids[i] = c.ID
		}
		if !reflect.DeepEqual(ids, []string{"TERM-burn", "TERM-debt"}) {
			t.Fatalf("expected related terms by ID then name, got %v", ids)
		}
	})

	t.Run("unknown primary is skipped", func(t *testing.T) {
		if got := Expand([]string{"CHAR-0404"}, col); len(got) != 0 {
			t.Fatalf("expected no candidates, got %v", got)
		}
	})
}

package session

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "session", "state.json")

	state, err := Load(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if state.LastIntent != "" || len(state.History) != 0 {
		t.Fatalf("expected fresh state, got %+v", state)
	}

	state.Record("tell me about Maris", "brainstorm", []string{"CHAR-0001", "LOC-0002"})
	if err := state.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LastIntent != "brainstorm" {
		t.Fatalf("unexpected intent: %q", reloaded.LastIntent)
	}
	if !reflect.DeepEqual(reloaded.StickyIDs, []string{"CHAR-0001", "LOC-0002"}) {
		t.Fatalf("unexpected sticky IDs: %v", reloaded.StickyIDs)
	}
	if len(reloaded.History) != 1 || reloaded.History[0].Query != "tell me about Maris" {
		t.Fatalf("unexpected history: %+v", reloaded.History)
	}
}

func TestRecord_Caps(t *testing.T) {
	state := &State{}
	for i := 0; i < maxHistory+10; i++ {
		state.Record(fmt.Sprintf("query %d", i), "brainstorm", nil)
	}
	if len(state.History) != maxHistory {
		t.Fatalf("expected history capped at %d, got %d", maxHistory, len(state.History))
	}
	// The oldest entries fall off the front.
	if state.History[0].Query != "query 10" {
		t.Fatalf("unexpected oldest entry: %q", state.History[0].Query)
	}

	var ids []string
	for i := 0; i < maxSticky+5; i++ {
		ids = append(ids, fmt.Sprintf("CHAR-%04d", i))
	}
	state.Record("big", "outline", ids)
	if len(state.StickyIDs) != maxSticky {
		t.Fatalf("expected sticky capped at %d, got %d", maxSticky, len(state.StickyIDs))
	}
	if state.StickyIDs[0] != "CHAR-0000" {
		t.Fatalf("expected earliest IDs kept, got %v", state.StickyIDs)
	}
}

func TestCarry(t *testing.T) {
	state := &State{StickyIDs: []string{"CHAR-0001", "LOC-0002"}}

	t.Run("sticky IDs lead", func(t *testing.T) {
		got := state.Carry([]string{"FACT-0003", "CHAR-0004"})
		want := []string{"CHAR-0001", "LOC-0002", "FACT-0003", "CHAR-0004"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("overlap dedupes case-insensitively", func(t *testing.T) {
		got := state.Carry([]string{"char-0001", "FACT-0003"})
		want := []string{"CHAR-0001", "LOC-0002", "FACT-0003"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("empty sticky passes through", func(t *testing.T) {
		fresh := &State{}
		got := fresh.Carry([]string{"CHAR-0001"})
		if !reflect.DeepEqual(got, []string{"CHAR-0001"}) {
			t.Fatalf("got %v", got)
		}
	})
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := &State{LastIntent: "outline"}
	if err := state.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("clear: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if reloaded.LastIntent != "" {
		t.Fatalf("expected fresh state after clear, got %+v", reloaded)
	}
	// Clearing twice is fine.
	if err := Clear(path); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSortedStickyIDs(t *testing.T) {
	state := &State{StickyIDs: []string{"LOC-0002", "CHAR-0001"}}
	got := state.SortedStickyIDs()
	if !reflect.DeepEqual(got, []string{"CHAR-0001", "LOC-0002"}) {
		t.Fatalf("got %v", got)
	}
	// Original order untouched.
	if state.StickyIDs[0] != "LOC-0002" {
		t.Fatalf("sort mutated state: %v", state.StickyIDs)
	}
}

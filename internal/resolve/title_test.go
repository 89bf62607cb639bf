package resolve

import "testing"

func TestMatchTitles(t *testing.T) {
	candidates := []TitleCandidate{
		{ID: "STORY-0001", Title: "The Long Tide"},
		{ID: "STORY-0002", Title: "Anchor Burn"},
		{ID: "STORY-0003", Title: "The Long Ride"},
	}

	t.Run("unique match", func(t *testing.T) {
		got := MatchTitles("anchor burn", candidates)
		if got.Match == nil {
			t.Fatalf("expected a match, got options %v", got.Options)
		}
		if got.Match.ID != "STORY-0002" {
			t.Fatalf("expected STORY-0002, got %s", got.Match.ID)
		}
	})

	t.Run("ambiguous titles return options, never a guess", func(t *testing.T) {
		got := MatchTitles("the long tide", candidates)
		if got.Match != nil {
			t.Fatalf("expected no match for ambiguous query, got %s", got.Match.ID)
		}
		if len(got.Options) != 2 {
			t.Fatalf("expected 2 options, got %v", got.Options)
		}
		if got.Options[0].ID != "STORY-0001" {
			t.Fatalf("expected closest candidate first, got %v", got.Options)
		}
	})

	t.Run("nothing under threshold", func(t *testing.T) {
		got := MatchTitles("completely different words here", candidates)
		if got.Match != nil || got.Options != nil {
			t.Fatalf("expected empty result, got %+v", got)
		}
	})
}

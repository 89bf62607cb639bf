package checks

import (
	"testing"
	"time"

	"tidescraft/internal/entity"
)

func TestParseFictionalDate(t *testing.T) {
	t.Run("iso", func(t *testing.T) {
		d, err := ParseFictionalDate("2104-06-15")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if d.Year() != 2104 || d.Month() != time.June || d.Day() != 15 {
			t.Fatalf("unexpected date: %v", d)
		}
	})

	t.Run("year notation", func(t *testing.T) {
		d, err := ParseFictionalDate("Year 5")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if d.Year() != 2004 {
			t.Fatalf("Year 5 should map to 2004, got %d", d.Year())
		}
	})

	t.Run("year one is the epoch", func(t *testing.T) {
		d, err := ParseFictionalDate("Year 1")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.Equal(time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("Year 1 should be 2000-01-01, got %v", d)
		}
	})

	t.Run("cycle notation", func(t *testing.T) {
		d, err := ParseFictionalDate("Cycle 3")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if d.Year() != 2300 {
			t.Fatalf("Cycle 3 should map to 2300, got %d", d.Year())
		}
	})

	t.Run("unrecognized", func(t *testing.T) {
		if _, err := ParseFictionalDate("the distant past"); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestParseTimelineEvents(t *testing.T) {
	t.Run("bullet events in document order", func(t *testing.T) {
		content := "# Lore\n\n- **Year 2**: The first corridor opens.\n- **Year 7**: The Heliodrome drifts loose.\n"
		events := ParseTimelineEvents(content, "lore/history.md")
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].OriginalDate != "Year 2" || events[1].OriginalDate != "Year 7" {
			t.Fatalf("unexpected order: %+v", events)
		}
		if events[0].Description != "The first corridor opens." {
			t.Fatalf("unexpected description: %q", events[0].Description)
		}
	})

	t.Run("timeline section with date-prefixed lines", func(t *testing.T) {
		content := "## Timeline\n\nYear 3 The compact forms.\nIt holds the coast.\nYear 9 The compact splinters.\n\n## Aftermath\n\nYear 1 should not be picked up here.\n"
		events := ParseTimelineEvents(content, "lore/history.md")
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d: %+v", len(events), events)
		}
		if events[0].OriginalDate != "Year 3" || events[1].OriginalDate != "Year 9" {
			t.Fatalf("unexpected events: %+v", events)
		}
		if events[0].Description != "The compact forms. It holds the coast." {
			t.Fatalf("continuation lines should join: %q", events[0].Description)
		}
	})

	t.Run("undated bullets are dropped", func(t *testing.T) {
		events := ParseTimelineEvents("- **someday**: who knows\n", "lore/history.md")
		if len(events) != 0 {
			t.Fatalf("expected none, got %+v", events)
		}
	})
}

func TestCheckTimeline(t *testing.T) {
	lore := func(body string) *entity.Entity {
		return &entity.Entity{ID: "LORE-0001", Kind: entity.KindLore, Name: "History", Body: body, SourcePath: "lore/history.md"}
	}
	story := func(id, name, date string) *entity.Entity {
		return &entity.Entity{ID: id, Kind: entity.KindStory, Name: name, Date: date}
	}

	t.Run("span covers all events", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **2100-01-01**: start\n- **2100-12-31**: end\n"))
		report := CheckTimeline(col)
		if report.Span == nil {
			t.Fatalf("expected span")
		}
		if report.Span.DurationDays != 364 {
			t.Fatalf("expected 364 days, got %d", report.Span.DurationDays)
		}
		if report.Failed() {
			t.Fatalf("expected pass, got %+v", report.Hard)
		}
	})

	t.Run("same-source regression is hard", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 9**: late event\n- **Year 2**: early event\n"))
		report := CheckTimeline(col)
		if len(report.Hard) != 1 {
			t.Fatalf("expected 1 hard issue, got %+v", report.Hard)
		}
	})

	t.Run("regressions across sources are tolerated", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 9**: late event\n"))
		col.Add(&entity.Entity{ID: "LORE-0002", Kind: entity.KindLore, Name: "Other", Body: "- **Year 2**: early event\n", SourcePath: "lore/other.md"})
		report := CheckTimeline(col)
		if report.Failed() {
			t.Fatalf("different sources should not conflict: %+v", report.Hard)
		}
	})

	t.Run("story before span start is hard", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 5**: start\n- **Year 9**: end\n"))
		col.Add(story("STORY-0001", "Prequel", "Year 2"))
		report := CheckTimeline(col)
		if len(report.Hard) != 1 || report.Hard[0].Story != "Prequel" {
			t.Fatalf("expected hard issue for Prequel, got %+v", report.Hard)
		}
	})

	t.Run("story after span end is soft", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 5**: start\n- **Year 9**: end\n"))
		col.Add(story("STORY-0002", "Sequel", "Year 40"))
		report := CheckTimeline(col)
		if report.Failed() {
			t.Fatalf("future story should not fail: %+v", report.Hard)
		}
		if len(report.Soft) != 1 || report.Soft[0].Story != "Sequel" {
			t.Fatalf("expected soft issue for Sequel, got %+v", report.Soft)
		}
	})

	t.Run("story date from body fallback", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 5**: start\n- **Year 9**: end\n"))
		col.Add(&entity.Entity{
			ID: "STORY-0003", Kind: entity.KindStory, Name: "Undated",
			Body: "It was Year 3 when the tide turned.",
		})
		report := CheckTimeline(col)
		if len(report.Hard) != 1 {
			t.Fatalf("expected hard issue from body date, got %+v", report.Hard)
		}
	})

	t.Run("undatable story is skipped", func(t *testing.T) {
		col := entity.NewCollection()
		col.Add(lore("- **Year 5**: start\n"))
		col.Add(&entity.Entity{ID: "STORY-0004", Kind: entity.KindStory, Name: "Vague", Body: "No dates at all."})
		report := CheckTimeline(col)
		if report.Failed() || len(report.Soft) != 0 {
			t.Fatalf("expected clean report, got %+v", report)
		}
		if report.Stories != 1 {
			t.Fatalf("expected 1 story counted, got %d", report.Stories)
		}
	})
}

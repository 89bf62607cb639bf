package checks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tidescraft/internal/entity"
)

// Event is one dated timeline entry extracted from lore prose.
type Event struct {
	Date         time.Time `json:"date"`
	OriginalDate string    `json:"original_date"`
	Description  string    `json:"description"`
	Source       string    `json:"source"`
	Raw          string    `json:"raw"`
}

// TimelineIssue flags a dating conflict between stories and the lore
// timeline, or within the timeline itself.
type TimelineIssue struct {
	Type  Severity `json:"type"`
	Story string   `json:"story,omitempty"`
	Issue string   `json:"issue"`
}

// TimelineSpan is the dated extent of the known timeline.
type TimelineSpan struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationDays int       `json:"duration_days"`
}

// TimelineReport summarizes one timeline variance pass.
type TimelineReport struct {
	Timestamp time.Time       `json:"timestamp"`
	Events    []Event         `json:"events"`
	Hard      []TimelineIssue `json:"hard"`
	Soft      []TimelineIssue `json:"soft"`
	Span      *TimelineSpan   `json:"timeline_span,omitempty"`
	Stories   int             `json:"total_stories"`
}

// Failed reports whether any hard conflict was found.
func (r *TimelineReport) Failed() bool { return len(r.Hard) > 0 }

var (
	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	yearPattern      = regexp.MustCompile(`^Year (\d+)$`)
	cyclePattern     = regexp.MustCompile(`^Cycle (\d+)$`)
	eventLinePattern = regexp.MustCompile(`(?m)^- \*\*(.*?)\*\*:?\s*(.*)$`)
	sectionDate      = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|Year \d+|Cycle \d+)`)
	bodyDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		regexp.MustCompile(`\b(Year \d+)\b`),
		regexp.MustCompile(`\b(Cycle \d+)\b`),
	}
	timelineSection = regexp.MustCompile(`(?is)## Timeline.*?(?:\n## |$)`)
)

// ParseFictionalDate maps the universe's date notations onto real
// timestamps for comparison. "Year 1" is the start of the modern era
// (2000-01-01); each cycle is a century from the same epoch.
func ParseFictionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case isoDatePattern.MatchString(s):
		return time.Parse("2006-01-02", s)
	case yearPattern.MatchString(s):
		n, _ := strconv.Atoi(yearPattern.FindStringSubmatch(s)[1])
		return time.Date(1999+n, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	case cyclePattern.MatchString(s):
		n, _ := strconv.Atoi(cyclePattern.FindStringSubmatch(s)[1])
		return time.Date(2000+n*100, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseTimelineEvents extracts dated events from lore prose, preserving
// document order. Both "## Timeline" sections with date-prefixed lines and
// standalone "- **date**: description" bullets are recognized.
func ParseTimelineEvents(content, source string) []Event {
	var events []Event

	for _, section := range timelineSection.FindAllString(content, -1) {
		events = append(events, parseTimelineSection(section, source)...)
	}

	for _, m := range eventLinePattern.FindAllStringSubmatch(content, -1) {
		dateStr, description := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if e, ok := newEvent(dateStr, description, source); ok {
			events = append(events, e)
		}
	}
	return events
}

func parseTimelineSection(section, source string) []Event {
	var events []Event
	var currentDate string
	var description []string

	flush := func() {
		if currentDate == "" {
			return
		}
		if e, ok := newEvent(currentDate, strings.TrimSpace(strings.Join(description, " ")), source); ok {
			events = append(events, e)
		}
	}

	for _, line := range strings.Split(section, "\n") {
		if m := sectionDate.FindString(line); m != "" {
			flush()
			currentDate = m
			description = []string{strings.TrimSpace(strings.TrimPrefix(line, m))}
			continue
		}
		if currentDate != "" {
			description = append(description, strings.TrimSpace(line))
		}
	}
	flush()
	return events
}

func newEvent(dateStr, description, source string) (Event, bool) {
	date, err := ParseFictionalDate(dateStr)
	if err != nil {
		return Event{}, false
	}
	return Event{
		Date:         date,
		OriginalDate: dateStr,
		Description:  description,
		Source:       source,
		Raw:          dateStr + ": " + description,
	}, true
}

// storyDate resolves a story's date from frontmatter, falling back to the
// first recognizable date notation in the body.
func storyDate(story *entity.Entity) (time.Time, bool) {
	if story.Date != "" {
		if d, err := ParseFictionalDate(story.Date); err == nil {
			return d, true
		}
	}
	for _, pattern := range bodyDatePatterns {
		if m := pattern.FindString(story.Body); m != "" {
			if d, err := ParseFictionalDate(m); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// CheckTimeline extracts the lore timeline, dates every story, and flags
// conflicts. A story set before the earliest known event is a hard failure;
// one set after the latest event is only a soft warning, since it may
// simply be a future story. Timeline events that run backwards in document
// order are hard failures: authors write timelines chronologically, so an
// out-of-order entry is either a typo'd date or a real contradiction.
func CheckTimeline(col *entity.Collection) *TimelineReport {
	report := &TimelineReport{Timestamp: time.Now().UTC()}

	for _, e := range col.All() {
		if e.Kind != entity.KindLore {
			continue
		}
		report.Events = append(report.Events, ParseTimelineEvents(e.Body, e.SourcePath)...)
	}

	if len(report.Events) > 0 {
		span := &TimelineSpan{Start: report.Events[0].Date, End: report.Events[0].Date}
		for _, e := range report.Events[1:] {
			if e.Date.Before(span.Start) {
				span.Start = e.Date
			}
			if e.Date.After(span.End) {
				span.End = e.Date
			}
		}
		span.DurationDays = int(span.End.Sub(span.Start).Hours() / 24)
		report.Span = span
	}

	for i := 1; i < len(report.Events); i++ {
		prev, curr := report.Events[i-1], report.Events[i]
		if prev.Source == curr.Source && curr.Date.Before(prev.Date) {
			report.Hard = append(report.Hard, TimelineIssue{
				Type:  SeverityHard,
				Issue: fmt.Sprintf("Timeline events out of order: %s comes after %s", prev.OriginalDate, curr.OriginalDate),
			})
		}
	}

	for _, e := range col.All() {
		if e.Kind != entity.KindStory {
			continue
		}
		report.Stories++
		date, ok := storyDate(e)
		if !ok || report.Span == nil {
			continue
		}
		if date.Before(report.Span.Start) {
			report.Hard = append(report.Hard, TimelineIssue{
				Type:  SeverityHard,
				Story: e.Name,
				Issue: fmt.Sprintf("Story date %s is before earliest timeline event %s", date.Format("2006-01-02"), report.Span.Start.Format("2006-01-02")),
			})
		} else if date.After(report.Span.End) {
			report.Soft = append(report.Soft, TimelineIssue{
				Type:  SeveritySoft,
				Story: e.Name,
				Issue: fmt.Sprintf("Story date %s is after latest timeline event %s", date.Format("2006-01-02"), report.Span.End.Format("2006-01-02")),
			})
		}
	}

	return report
}

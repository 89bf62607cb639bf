// Package pack exports prompt packs: compact JSON and markdown renditions
// of a chosen entity set, sized for pasting into a model prompt.
package pack

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tidescraft/internal/entity"
)

// Refs collects an entry's typed cross-references.
type Refs struct {
	Characters []string `json:"characters"`
	Locations  []string `json:"locations"`
	Factions   []string `json:"factions"`
	RulesUsed  []string `json:"rules_used"`
}

// Entry is one entity in a pack, reduced to what a prompt needs.
type Entry struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	Summary50  string   `json:"summary_50"`
	Summary200 string   `json:"summary_200"`
	Rules      []string `json:"rules"`
	Refs       Refs     `json:"refs"`
	Source     string   `json:"source"`
}

// Pack is the exported payload.
type Pack struct {
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// Build assembles a pack from the given IDs. Unknown IDs are skipped, and
// entries are sorted by ID so output is stable.
func Build(ids []string, col *entity.Collection) *Pack {
	var entries []Entry
	for _, id := range ids {
		e, ok := col.Get(id)
		if !ok {
			continue
		}
		rules := e.Rules
		if rules == nil {
			rules = []string{}
		}
		entries = append(entries, Entry{
			ID:         e.ID,
			Type:       string(e.Kind),
			Name:       e.Name,
			Summary50:  e.Summaries.Short,
			Summary200: e.Summaries.Medium,
			Rules:      rules,
			Refs: Refs{
				Characters: orEmpty(e.CrossRefs["characters"]),
				Locations:  orEmpty(e.CrossRefs["locations"]),
				Factions:   orEmpty(e.CrossRefs["factions"]),
				RulesUsed:  orEmpty(e.CrossRefs["rules_used"]),
			},
			Source: e.SourcePath,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return &Pack{CreatedAt: time.Now().UTC(), Entries: entries}
}

// Markdown renders the pack for human review.
func (p *Pack) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Prompt Pack: %s\n\n", p.CreatedAt.Format(time.RFC3339))
	for _, entry := range p.Entries {
		fmt.Fprintf(&b, "## %s (%s)\n", entry.Name, entry.ID)
		fmt.Fprintf(&b, "**Type:** %s\n", entry.Type)
		if entry.Summary200 != "" {
			fmt.Fprintf(&b, "**Summary:** %s\n\n", entry.Summary200)
		} else if entry.Summary50 != "" {
			fmt.Fprintf(&b, "**Summary:** %s\n\n", entry.Summary50)
		}
		if len(entry.Rules) > 0 {
			b.WriteString("### Rules\n")
			for _, rule := range entry.Rules {
				fmt.Fprintf(&b, "- %s\n", rule)
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// Package graphexport renders the entity reference graph as the project's
// standing artifacts: REFERENCE_MAP.json for the dashboard, plus the
// CANONICAL_INDEX.md and LINK_MAP.md documents.
package graphexport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"tidescraft/internal/entity"
)

// Node is one graph vertex. Unresolved edge targets become placeholder
// nodes with no path so the dashboard can still render the dangling edge.
type Node struct {
	CanonicalID string `json:"canonical_id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
}

// Edge is one typed reference between entities.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// ReferenceMap is the dashboard's graph payload.
type ReferenceMap struct {
	Generated time.Time `json:"generated"`
	Nodes     []Node    `json:"nodes"`
	Edges     []Edge    `json:"edges"`
}

// edgeCategories maps cross_refs categories to edge types.
var edgeCategories = []struct {
	category string
	edgeType string
}{
	{"characters", "character"},
	{"locations", "location"},
	{"factions", "faction"},
	{"mechanics", "mechanic"},
	{"stories", "story"},
	{"rules_used", "rule"},
}

// Build assembles the reference graph from a loaded collection. Edges come
// from each entity's cross_refs categories and from term relations; nodes
// cover every loaded entity plus placeholders for referenced IDs that never
// resolved.
func Build(col *entity.Collection) *ReferenceMap {
	rm := &ReferenceMap{Generated: time.Now().UTC()}

	known := make(map[string]struct{}, col.Len())
	for _, e := range col.All() {
		known[strings.ToLower(e.ID)] = struct{}{}
		rm.Nodes = append(rm.Nodes, Node{
			CanonicalID: e.ID,
			Type:        string(e.Kind),
			Name:        e.Name,
			Path:        e.SourcePath,
		})
	}

	placeholder := func(id string) {
		key := strings.ToLower(id)
		if _, ok := known[key]; ok {
			return
		}
		known[key] = struct{}{}
		rm.Nodes = append(rm.Nodes, Node{CanonicalID: id, Type: "term", Name: id})
	}

	for _, e := range col.All() {
		for _, ec := range edgeCategories {
			for _, target := range e.CrossRefs[ec.category] {
				placeholder(target)
				rm.Edges = append(rm.Edges, Edge{From: e.ID, To: target, Type: ec.edgeType})
			}
		}
		for _, related := range e.RelatedTerms {
			target := related
			if t, ok := col.Get(related); ok {
				target = t.ID
			} else if t, ok := col.FindByName(related); ok {
				target = t.ID
			}
			placeholder(target)
			rm.Edges = append(rm.Edges, Edge{From: e.ID, To: target, Type: "related"})
		}
	}

	sort.Slice(rm.Nodes, func(i, j int) bool { return rm.Nodes[i].CanonicalID < rm.Nodes[j].CanonicalID })
	return rm
}

// MarshalIndentJSON renders the map as the indented JSON the dashboard
// reads.
func (rm *ReferenceMap) MarshalIndentJSON() ([]byte, error) {
	data, err := json.MarshalIndent(rm, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// CanonicalIndexMarkdown renders the index of every entity grouped by type.
func (rm *ReferenceMap) CanonicalIndexMarkdown() string {
	byType := make(map[string][]Node)
	for _, n := range rm.Nodes {
		byType[n.Type] = append(byType[n.Type], n)
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	fmt.Fprintf(&b, "# Canonical Index\n\nThis index lists canonical entities, their IDs, and source paths. Generated: %s\n\n", rm.Generated.Format(time.RFC3339))
	for _, t := range types {
		fmt.Fprintf(&b, "## %s\n", strings.ToUpper(t[:1])+t[1:])
		for _, n := range byType[t] {
			if n.Path != "" {
				fmt.Fprintf(&b, "- `%s` — %s (`%s`)\n", n.CanonicalID, n.Name, n.Path)
			} else {
				fmt.Fprintf(&b, "- `%s` — %s\n", n.CanonicalID, n.Name)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// LinkMapMarkdown renders the entity and relationship listing.
func (rm *ReferenceMap) LinkMapMarkdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Link Map - Entity Relationships\n\nGenerated: %s\n\n", rm.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "## Entities (%d)\n\n", len(rm.Nodes))
	for _, n := range rm.Nodes {
		fmt.Fprintf(&b, "- `%s` (%s)\n", n.CanonicalID, n.Type)
	}
	fmt.Fprintf(&b, "\n## Relationships (%d)\n\n", len(rm.Edges))
	for _, e := range rm.Edges {
		fmt.Fprintf(&b, "- `%s` → `%s` (%s)\n", e.From, e.To, e.Type)
	}
	return b.String()
}

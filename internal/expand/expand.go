// Package expand grows a primary entity set by exactly one hop along
// declared cross-reference edges, recording why each ID was pulled in.
package expand

import (
	"fmt"
	"strings"

	"tidescraft/internal/entity"
)

// Candidate is an expanded ID with its provenance.
type Candidate struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type expandFunc func(e *entity.Entity, col *entity.Collection, seen map[string]struct{}, out *[]Candidate)

// crossRefCategories fixes traversal order so expansion output is
// deterministic regardless of map iteration.
var crossRefCategories = []string{"locations", "factions", "stories", "characters", "mechanics"}

// rules is the type-indexed expansion table. Structured entities follow
// their cross_refs categories; terms follow related-term links by name or
// ID.
var rules = map[entity.Kind]expandFunc{
	entity.KindCharacter: expandCrossRefs,
	entity.KindLocation:  expandCrossRefs,
	entity.KindFaction:   expandCrossRefs,
	entity.KindMechanics: expandCrossRefs,
	entity.KindStory:     expandCrossRefs,
	entity.KindLore:      expandCrossRefs,
	entity.KindManual:    expandCrossRefs,
	entity.KindRule:      expandCrossRefs,
	entity.KindTerm:      expandRelatedTerms,
}

// Expand performs one-hop traversal from the primary set. Expanded entities
// are never themselves expanded, and nothing already emitted (primary or
// expanded) is emitted twice.
func Expand(primary []string, col *entity.Collection) []Candidate {
	seen := make(map[string]struct{}, len(primary))
	for _, id := range primary {
		seen[strings.ToLower(id)] = struct{}{}
	}

	var out []Candidate
	for _, id := range primary {
		e, ok := col.Get(id)
		if !ok {
			continue
		}
		rule, ok := rules[e.Kind]
		if !ok {
			continue
		}
		rule(e, col, seen, &out)
	}
	return out
}

func expandCrossRefs(e *entity.Entity, col *entity.Collection, seen map[string]struct{}, out *[]Candidate) {
	for _, category := range crossRefCategories {
		for _, target := range e.CrossRefs[category] {
			emit(target, fmt.Sprintf("1-hop from %s → %s", e.ID, category), col, seen, out)
		}
	}
}

func expandRelatedTerms(e *entity.Entity, col *entity.Collection, seen map[string]struct{}, out *[]Candidate) {
	reason := fmt.Sprintf("1-hop from %s → related terms", e.ID)
	for _, related := range e.RelatedTerms {
		if target, ok := col.Get(related); ok {
			emit(target.ID, reason, col, seen, out)
			continue
		}
		// Related terms may be written as display names rather than IDs.
		if target, ok := col.FindByName(related); ok {
			emit(target.ID, reason, col, seen, out)
		}
	}
}

func emit(id, reason string, col *entity.Collection, seen map[string]struct{}, out *[]Candidate) {
	target, ok := col.Get(id)
	if !ok {
		return
	}
	key := strings.ToLower(target.ID)
	if _, done := seen[key]; done {
		return
	}
	seen[key] = struct{}{}
	*out = append(*out, Candidate{ID: target.ID, Reason: reason})
}

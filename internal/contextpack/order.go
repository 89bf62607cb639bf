package contextpack

import (
	"sort"
	"strings"

	"tidescraft/internal/entity"
)

// categoryKinds maps a profile bucket name to the entity kind it admits.
var categoryKinds = map[string]entity.Kind{
	"characters": entity.KindCharacter,
	"locations":  entity.KindLocation,
	"factions":   entity.KindFaction,
	"mechanics":  entity.KindMechanics,
	"stories":    entity.KindStory,
	"terms":      entity.KindTerm,
	"rules":      entity.KindRule,
}

// BuildOrder merges primary and expanded IDs into one deterministic, capped
// ordering. IDs are deduplicated, sorted, bucketed by the profile's category
// order, and truncated to the effective cap. IDs whose kind matches no
// bucket keep their sorted position at the tail. An explicit maxOverride
// beats the profile's MaxEntities.
func BuildOrder(primary []string, expanded []string, profile Profile, maxOverride int, col *entity.Collection) []string {
	merged := dedupe(append(append([]string{}, primary...), expanded...))
	sort.Strings(merged)

	buckets := make(map[string][]string, len(profile.Order))
	var unmatched []string
	for _, id := range merged {
		placed := false
		if e, ok := col.Get(id); ok {
			for _, category := range profile.Order {
				if categoryKinds[category] == e.Kind {
					buckets[category] = append(buckets[category], id)
					placed = true
					break
				}
			}
		}
		if !placed {
			unmatched = append(unmatched, id)
		}
	}

	ordered := make([]string, 0, len(merged))
	for _, category := range profile.Order {
		ordered = append(ordered, buckets[category]...)
	}
	ordered = append(ordered, unmatched...)

	max := profile.MaxEntities
	if maxOverride > 0 {
		max = maxOverride
	}
	if max > 0 && len(ordered) > max {
		ordered = ordered[:max]
	}
	return ordered
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		key := strings.ToLower(id)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, id)
	}
	return out
}

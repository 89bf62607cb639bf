package entity

import "strings"

// Kind is the closed set of entity types the tool understands.
type Kind string

const (
	KindCharacter Kind = "character"
	KindLocation  Kind = "location"
	KindFaction   Kind = "faction"
	KindMechanics Kind = "mechanics"
	KindStory     Kind = "story"
	KindTerm      Kind = "term"
	KindLore      Kind = "lore"
	KindManual    Kind = "manual"
	KindRule      Kind = "rule"
)

var kinds = map[string]Kind{
	"character": KindCharacter,
	"location":  KindLocation,
	"faction":   KindFaction,
	"mechanics": KindMechanics,
	"story":     KindStory,
	"term":      KindTerm,
	"lore":      KindLore,
	"manual":    KindManual,
	"rule":      KindRule,
}

// idPrefixes maps canonical ID prefixes to kinds, for files whose
// frontmatter omits an explicit type.
var idPrefixes = map[string]Kind{
	"CHAR":  KindCharacter,
	"LOC":   KindLocation,
	"FACT":  KindFaction,
	"MECH":  KindMechanics,
	"STORY": KindStory,
	"TERM":  KindTerm,
	"LORE":  KindLore,
	"RULE":  KindRule,
}

func ParseKind(s string) (Kind, bool) {
	k, ok := kinds[strings.ToLower(strings.TrimSpace(s))]
	return k, ok
}

// KindFromID infers a kind from a canonical ID prefix such as CHAR-0001.
func KindFromID(id string) (Kind, bool) {
	prefix, _, found := strings.Cut(id, "-")
	if !found {
		return "", false
	}
	k, ok := idPrefixes[strings.ToUpper(prefix)]
	return k, ok
}

// Package contextpack assembles a bounded, deterministically ordered set of
// entity IDs for downstream prompt building.
package contextpack

// Profile controls how a context set is bucketed and how large it may grow.
type Profile struct {
	Order       []string `yaml:"order" json:"order"`
	MaxEntities int      `yaml:"max_entities" json:"max_entities"`
}

// DefaultProfile is the general-purpose drafting profile: rules first so
// constraints land before color.
var DefaultProfile = Profile{
	Order:       []string{"rules", "characters", "locations", "mechanics", "factions", "terms", "stories"},
	MaxEntities: 8,
}

// Profiles are the built-in intent-shaped orderings.
var Profiles = map[string]Profile{
	"default": DefaultProfile,
	"outline": {
		Order:       []string{"rules", "stories", "characters", "locations", "factions", "mechanics", "terms"},
		MaxEntities: 8,
	},
	"worldbuild_mechanics": {
		Order:       []string{"rules", "mechanics", "terms", "locations", "factions", "characters", "stories"},
		MaxEntities: 10,
	},
	"revise_scene": {
		Order:       []string{"rules", "characters", "locations", "terms", "mechanics", "factions", "stories"},
		MaxEntities: 6,
	},
	"brainstorm": {
		Order:       []string{"characters", "locations", "factions", "stories", "mechanics", "terms", "rules"},
		MaxEntities: 12,
	},
}

// GetProfile returns the named profile, falling back to the default for
// unknown names.
func GetProfile(name string) Profile {
	if p, ok := Profiles[name]; ok {
		return p
	}
	return DefaultProfile
}
